package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "blog/cover.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/blog/cover.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "blog", "cover.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorageDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "blog/cover.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "blog/cover.png"))
	_, err = os.Stat(filepath.Join(dir, "blog", "cover.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(context.Background(), "blog/cover.png"))
}

func TestNewLocalCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s, err := NewLocal(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
