package upload

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestStorageSaveImage(t *testing.T) {
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("valid png is recompressed and saved", func(t *testing.T) {
		path, err := store.SaveImage(BucketBlog, "my photo.png", pngBytes(t, 10, 10))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "/uploads/blog/"))
		assert.True(t, strings.HasSuffix(path, "my_photo.jpg"))

		onDisk := filepath.Join(store.Root(), strings.TrimPrefix(path, "/uploads/"))
		data, err := os.ReadFile(onDisk)
		require.NoError(t, err)
		// JPEG SOI marker after recompression
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data[:3])
	})

	t.Run("spoofed extension is rejected", func(t *testing.T) {
		_, err := store.SaveImage(BucketProjects, "evil.jpg", []byte("#!/bin/sh\nrm -rf /"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("disallowed extension is rejected", func(t *testing.T) {
		_, err := store.SaveImage(BucketBlog, "resume.pdf", []byte("%PDF-1.4"))
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("unknown bucket is rejected", func(t *testing.T) {
		_, err := store.SaveImage("cv", "a.png", pngBytes(t, 2, 2))
		assert.Error(t, err)
	})
}

func TestStorageRemove(t *testing.T) {
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	path, err := store.SaveImage(BucketBlog, "gone.png", pngBytes(t, 4, 4))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	_, statErr := os.Stat(filepath.Join(store.Root(), strings.TrimPrefix(path, "/uploads/")))
	assert.True(t, os.IsNotExist(statErr))

	t.Run("removing twice is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(path))
	})

	t.Run("traversal outside root is refused", func(t *testing.T) {
		assert.Error(t, store.Remove("/uploads/../../etc/passwd"))
		assert.Error(t, store.Remove("/etc/passwd"))
	})
}

func TestCompressImageBounds(t *testing.T) {
	big := pngBytes(t, 2400, 1200)
	out, err := compressImage(big, 1200, 80)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestValidateImage(t *testing.T) {
	data := pngBytes(t, 2, 2)

	t.Run("matching content and extension", func(t *testing.T) {
		res := ValidateImage("pic.png", data, "image/png")
		assert.True(t, res.Valid)
	})

	t.Run("content not matching extension", func(t *testing.T) {
		res := ValidateImage("pic.jpg", data, "image/png")
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, "does not match extension")
	})

	t.Run("octet-stream rejected", func(t *testing.T) {
		res := ValidateImage("pic.png", data, "application/octet-stream")
		assert.False(t, res.Valid)
	})

	t.Run("no extension", func(t *testing.T) {
		res := ValidateImage("pic", data, "image/png")
		assert.False(t, res.Valid)
	})
}
