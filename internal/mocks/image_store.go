package mocks

import (
	"fmt"
	"io"

	"github.com/VernoB/TodoTask/internal/platform/filestore"
)

// MockImageStore implements filestore.ImageStore for testing
type MockImageStore struct {
	// Function fields for customizable behavior
	SaveFn   func(originalName, contentType string, r io.Reader) (string, error)
	RemoveFn func(path string) error

	// Defaults used when the function fields are nil
	SaveError   error
	RemoveError error

	// Recorded calls
	Saved   []string
	Removed []string
}

var _ filestore.ImageStore = (*MockImageStore)(nil)

// Save implements the ImageStore interface
func (m *MockImageStore) Save(originalName, contentType string, r io.Reader) (string, error) {
	if m.SaveFn != nil {
		return m.SaveFn(originalName, contentType, r)
	}

	if m.SaveError != nil {
		return "", m.SaveError
	}

	if !filestore.IsAcceptedImageType(contentType) {
		return "", filestore.ErrUnsupportedType
	}

	path := fmt.Sprintf("images/mock-%d-%s", len(m.Saved), originalName)
	m.Saved = append(m.Saved, path)
	return path, nil
}

// Remove implements the ImageStore interface
func (m *MockImageStore) Remove(path string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(path)
	}

	if m.RemoveError != nil {
		return m.RemoveError
	}

	m.Removed = append(m.Removed, path)
	return nil
}
