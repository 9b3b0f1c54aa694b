package storage

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

// memFile adapts an in-memory byte slice to the multipart.File interface.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(data []byte) memFile {
	return memFile{bytes.NewReader(data)}
}

func encodedImage(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown format %v", format)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

// chdirTemp points the relative images/ base dir at a throwaway location.
func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestValidateSniffsFormat(t *testing.T) {
	is := NewImageService()

	for _, format := range []string{"png", "gif", "jpeg"} {
		img := &domain.Image{
			File:     newMemFile(encodedImage(t, format)),
			Filename: "upload.bin",
		}
		require.NoError(t, is.Validate(img))
		assert.Equal(t, format, img.Format)
	}
}

func TestValidateRejectsNonImage(t *testing.T) {
	is := NewImageService()

	// A text file renamed to .png must not get through on its extension.
	img := &domain.Image{
		File:     newMemFile([]byte("definitely not pixels")),
		Filename: "notes.png",
	}
	err := is.Validate(img)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestValidateRejectsOversize(t *testing.T) {
	is := NewImageService()

	img := &domain.Image{
		File:     newMemFile(make([]byte, domain.MaxUploadSize+1)),
		Filename: "huge.png",
	}
	err := is.Validate(img)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestCreateStoresFile(t *testing.T) {
	chdirTemp(t)
	is := NewImageService()

	img := &domain.Image{
		OwnerType: domain.OwnerTypePost,
		OwnerID:   1,
		File:      newMemFile(encodedImage(t, "png")),
		Filename:  "upload.png",
	}
	require.NoError(t, is.Create(img))

	// The filename is replaced with a unique one carrying the sniffed format.
	assert.Equal(t, ".png", filepath.Ext(img.Filename))
	assert.Equal(t, img.Path(), img.URL)

	_, err := os.Stat(img.RelativePath())
	require.NoError(t, err)

	stored, err := is.ByOwner(domain.OwnerTypePost, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, img.Filename, stored[0].Filename)
}

func TestDeleteAllRemovesOwnerDir(t *testing.T) {
	chdirTemp(t)
	is := NewImageService()

	img := &domain.Image{
		OwnerType: domain.OwnerTypePost,
		OwnerID:   2,
		File:      newMemFile(encodedImage(t, "gif")),
		Filename:  "upload.gif",
	}
	require.NoError(t, is.Create(img))
	require.NoError(t, is.DeleteAll(domain.OwnerTypePost, 2))

	stored, err := is.ByOwner(domain.OwnerTypePost, 2)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
