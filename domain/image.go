package domain

import (
	"fmt"
	"mime/multipart"
	"net/url"
)

const (
	// OwnerTypePost expresses that an Image belongs to a Post.
	OwnerTypePost = "post"
	// OwnerTypeUser expresses that an Image belongs to a User.
	OwnerTypeUser = "user"
	// ImagesBaseDir determines the general storage location of uploaded images.
	ImagesBaseDir = "images"
	// MaxUploadSize determines the maximum filesize of an image to be uploaded.
	MaxUploadSize int64 = 5 << 20 // 5 Megabyte
)

// Image represents an image to be uploaded. Images are only stored as files in
// the filesystem and have no dedicated table in the database. An Image always
// belongs to an owner record, determined by OwnerType and OwnerID, and that
// relationship is resolved through the file location:
// an Image belonging to the Post with ID 2 is stored in images/post/2/.
// File holds the actual upload, Format the sniffed raster format (png, jpeg,
// gif) once validation has run.
type Image struct {
	URL       string         `json:"url"`
	OwnerType string         `json:"-"`
	OwnerID   int            `json:"-"`
	File      multipart.File `json:"-"`
	Filename  string         `json:"-"`
	Format    string         `json:"-"`
	Size      int64          `json:"-"`
}

// ImageService is a set of methods to manipulate and work with the Image model
// and respective image files. Validate may be called on its own to reject a
// payload before its owner record exists; Create validates again and persists.
type ImageService interface {
	Validate(image *Image) error
	Create(image *Image) error
	ByOwner(ownerType string, ownerID int) ([]Image, error)
	Delete(i *Image) error
	DeleteAll(ownerType string, ownerID int) error
}

// Path returns the url path of an image stored in the filesystem.
func (i *Image) Path() string {
	temp := url.URL{
		Path: "/" + i.RelativePath(),
	}
	return temp.String()
}

// RelativePath returns the relative path to an image stored in the filesystem.
func (i *Image) RelativePath() string {
	return fmt.Sprintf("%v/%v/%v/%v", ImagesBaseDir, i.OwnerType, i.OwnerID, i.Filename)
}
