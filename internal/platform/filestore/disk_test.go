package filestore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VernoB/TodoTask/internal/platform/filestore"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	store, err := filestore.NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	path, err := store.Save("photo.png", "image/png", strings.NewReader("fake png bytes"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file should be gone after Remove")
}

func TestDiskStore_RejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	store, err := filestore.NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = store.Save("malware.gif", "image/gif", strings.NewReader("gif"))
	assert.ErrorIs(t, err, filestore.ErrUnsupportedType)

	_, err = store.Save("doc.pdf", "application/pdf", strings.NewReader("pdf"))
	assert.ErrorIs(t, err, filestore.ErrUnsupportedType)
}

func TestDiskStore_RemoveMissing(t *testing.T) {
	t.Parallel()

	store, err := filestore.NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	err = store.Remove(filepath.Join(store.Dir(), "does-not-exist.png"))
	assert.ErrorIs(t, err, filestore.ErrNotFound)

	assert.ErrorIs(t, store.Remove(""), filestore.ErrNotFound)
}

func TestDiskStore_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := filestore.NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		path, err := store.Save("a.jpg", "image/jpeg", strings.NewReader("x"))
		require.NoError(t, err)
		assert.False(t, seen[path], "paths must be unique")
		seen[path] = true
	}
}

func TestIsAcceptedImageType(t *testing.T) {
	t.Parallel()

	assert.True(t, filestore.IsAcceptedImageType("image/png"))
	assert.True(t, filestore.IsAcceptedImageType("image/jpg"))
	assert.True(t, filestore.IsAcceptedImageType("image/jpeg"))
	assert.False(t, filestore.IsAcceptedImageType("image/gif"))
	assert.False(t, filestore.IsAcceptedImageType("text/html"))
}
