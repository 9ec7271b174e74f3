// Package filestore provides storage for uploaded task images. The disk
// implementation writes uniquely named files under a configured directory and
// accepts only the image content types the API supports.
package filestore

import (
	"errors"
	"io"
)

// Errors returned by image stores.
var (
	// ErrUnsupportedType is returned when an upload's content type is not an
	// accepted image format. Uploads of other types are dropped rather than
	// failing the whole request; handlers then see a missing image.
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrNotFound is returned when removing a path that does not exist.
	ErrNotFound = errors.New("stored image not found")
)

// ImageStore defines the narrow contract for stored image resources.
type ImageStore interface {
	// Save persists the uploaded image and returns the storage path used to
	// reference it later. The original filename is only consulted for its
	// extension. Returns ErrUnsupportedType for non-image uploads.
	Save(originalName, contentType string, r io.Reader) (string, error)

	// Remove deletes a previously stored image by its storage path.
	// Returns ErrNotFound if no file exists at that path.
	Remove(path string) error
}

// acceptedImageTypes mirrors the upload filter: png, jpg and jpeg only.
var acceptedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpeg",
}

// IsAcceptedImageType reports whether the given content type is an accepted
// upload format.
func IsAcceptedImageType(contentType string) bool {
	_, ok := acceptedImageTypes[contentType]
	return ok
}
