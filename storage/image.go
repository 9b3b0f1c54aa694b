package storage

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// Register the raster decoders that DecodeConfig sniffs against.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

// ImageService manages image files attached to posts and users.
// It implements the domain.ImageService interface.
type ImageService struct {
	imageValidator
}

// imageValidator runs validations on incoming Image data.
// On success, it passes the data on to imageCrud.
// Otherwise, it returns the error of the validation that has failed.
type imageValidator struct {
	imageCrud
}

// imageCrud runs CRUD operations on the filesystem using incoming Image data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type imageCrud struct{}

// NewImageService returns an instance of ImageService.
func NewImageService() *ImageService {
	return &ImageService{
		imageValidator{
			imageCrud{},
		},
	}
}

// Ensure the ImageService struct properly implements the domain.ImageService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ImageService = &ImageService{}

// Validate runs the validations needed to accept an uploaded image, without
// touching the filesystem. Handlers call this before the image's owner record
// exists, so a broken upload never produces a half-created post.
func (iv *imageValidator) Validate(img *domain.Image) error {
	return runImageValFns(img,
		iv.belowMaxSize,
		iv.decodableRaster)
}

// Create runs validations needed for storing uploaded images in the filesystem.
func (iv *imageValidator) Create(img *domain.Image) error {
	err := runImageValFns(img,
		iv.belowMaxSize,
		iv.decodableRaster,
		iv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return iv.imageCrud.Create(img)
}

// runImageValFns runs any number of functions of type imageValFn on the passed in Image object.
func runImageValFns(img *domain.Image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

// A imageValFn is any function that takes in a pointer to a domain.Image object and returns an error.
type imageValFn func(img *domain.Image) error

// belowMaxSize makes sure that the image to be uploaded does not exceed MaxUploadSize.
func (iv *imageValidator) belowMaxSize(img *domain.Image) error {
	size, err := img.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err = resetFilePointer(img); err != nil {
		return err
	}
	img.Size = size
	if size > domain.MaxUploadSize {
		return errs.Errorf(
			errs.EINVALID,
			"Image "+img.Filename+" exceeds upload size limit of "+strconv.FormatInt(domain.MaxUploadSize/1000000, 10)+"MB.",
		)
	}
	return nil
}

// decodableRaster makes sure that the upload really is a decodable raster
// image. The format is sniffed from the file header by the registered
// decoders, so a renamed text file doesn't get through on its extension.
func (iv *imageValidator) decodableRaster(img *domain.Image) error {
	_, format, err := image.DecodeConfig(img.File)
	if err != nil {
		if resetErr := resetFilePointer(img); resetErr != nil {
			return resetErr
		}
		return errs.Errorf(
			errs.EINVALID,
			"Upload a valid image. The file "+img.Filename+" is corrupted or not an image.",
		)
	}
	if err = resetFilePointer(img); err != nil {
		return err
	}
	img.Format = format
	return nil
}

// fileNameUnique replaces the image's name with a unique string based on a
// unix timestamp, keeping the sniffed format as the extension.
func (iv *imageValidator) fileNameUnique(img *domain.Image) error {
	timestamp := time.Now().UnixMicro()
	img.Filename = strconv.FormatInt(timestamp, 10) + "." + img.Format
	return nil
}

// resetFilePointer sets the file pointer back to beginning of the file,
// so that subsequent reads can properly read from the beginning again.
func resetFilePointer(img *domain.Image) error {
	_, err := img.File.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	return nil
}

// Create takes a domain.Image object, creates a path to store the image,
// creates a destination file inside that path, and copies the file data from
// the domain.Image object into the destination file. If the path already
// exists, that one will be used. Images are only stored in the filesystem and
// have no dedicated table in the database; the posts table keeps the relative
// path of its attachment.
func (ic *imageCrud) Create(img *domain.Image) error {
	path, err := ic.mkImagePath(img.OwnerType, img.OwnerID)
	if err != nil {
		return err
	}
	dst, err := os.Create(path + img.Filename)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, img.File)
	if err != nil {
		return err
	}
	img.URL = img.Path()
	return nil
}

// ByOwner takes an ownerType, which as of now is either a Post or a User,
// and an ownerID. It returns a slice of domain.Image objects describing that
// owner's stored images.
func (ic *imageCrud) ByOwner(ownerType string, ownerID int) ([]domain.Image, error) {
	path := ic.imagePath(ownerType, ownerID)
	imgStrings, err := filepath.Glob(path + "*")
	if err != nil {
		return nil, err
	}
	ret := make([]domain.Image, len(imgStrings))
	for i := range ret {
		imgStrings[i] = strings.Replace(imgStrings[i], path, "", 1)
		ret[i] = domain.Image{
			Filename:  imgStrings[i],
			OwnerType: ownerType,
			OwnerID:   ownerID,
			URL:       path + imgStrings[i],
		}
	}
	return ret, nil
}

// Delete removes a specific image from the filesystem.
func (ic *imageCrud) Delete(i *domain.Image) error {
	return os.Remove(i.RelativePath())
}

// DeleteAll removes an entire directory containing images from the filesystem.
func (ic *imageCrud) DeleteAll(ownerType string, ownerID int) error {
	return os.RemoveAll(ic.imagePath(ownerType, ownerID))
}

// mkImagePath creates a filesystem path based on an image's ownerType and ownerID.
// This results in directories like: images/user/1/ and images/post/2/.
func (ic *imageCrud) mkImagePath(ownerType string, ownerID int) (string, error) {
	imagePath := ic.imagePath(ownerType, ownerID)
	err := os.MkdirAll(imagePath, 0755)
	if err != nil {
		return "", err
	}
	return imagePath, nil
}

// imagePath builds the name of a path based on the name of the base directory
// for images, an image's ownerType and its ownerID.
func (ic *imageCrud) imagePath(ownerType string, ownerID int) string {
	return fmt.Sprintf("%v/%v/%v/", domain.ImagesBaseDir, ownerType, ownerID)
}
