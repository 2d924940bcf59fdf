package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Buckets mirror the uploads/ subfolders the front end expects.
const (
	BucketBlog     = "blog"
	BucketProjects = "projects"
)

const (
	maxDimension = 1200
	jpegQuality  = 80
)

var ErrInvalidImage = errors.New("invalid image upload")

// Storage persists uploaded images on local disk under root/<bucket>/ and
// hands back the public /uploads path the front end prefixes with the API
// base URL.
type Storage struct {
	root string
}

// NewStorage ensures the bucket folders exist, like the original server does
// at startup.
func NewStorage(root string) (*Storage, error) {
	for _, bucket := range []string{BucketBlog, BucketProjects} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload folder %s: %w", bucket, err)
		}
	}
	return &Storage{root: root}, nil
}

// Root returns the on-disk uploads root, for static file serving.
func (s *Storage) Root() string {
	return s.root
}

// SaveImage validates, recompresses and writes an uploaded image, returning
// its public path ("/uploads/<bucket>/<file>").
func (s *Storage) SaveImage(bucket, originalName string, data []byte) (string, error) {
	if bucket != BucketBlog && bucket != BucketProjects {
		return "", fmt.Errorf("unknown upload bucket: %s", bucket)
	}

	contentType := http.DetectContentType(data)
	result := ValidateImage(originalName, data, contentType)
	if !result.Valid {
		return "", fmt.Errorf("%w: %s", ErrInvalidImage, result.Error)
	}

	// Recompress to bounded JPEG. On decode failure keep the original bytes;
	// they already passed validation.
	finalBytes, err := compressImage(data, maxDimension, jpegQuality)
	ext := ".jpg"
	if err != nil {
		finalBytes = data
		ext = result.Extension
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), sanitizeFilename(originalName), ext)
	if err := os.WriteFile(filepath.Join(s.root, bucket, filename), finalBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "/uploads/" + bucket + "/" + filename, nil
}

// Remove deletes a previously saved upload given its public path. Missing
// files are not an error; the row is the source of truth, the file is not.
func (s *Storage) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok {
		return fmt.Errorf("not an uploads path: %s", publicPath)
	}
	// Keep deletions inside the uploads root.
	clean := filepath.Clean(rel)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("refusing to remove path outside uploads root: %s", publicPath)
	}

	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// compressImage downscales to maxDimension (keeping aspect ratio) and
// re-encodes as JPEG with the given quality.
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width >= height && width > maxDimension {
		newWidth = maxDimension
		newHeight = int(float64(height) * float64(maxDimension) / float64(width))
	} else if height > width && height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeFilename strips the extension, replaces spaces with underscores and
// keeps only ASCII alphanumerics, underscores and dashes.
func sanitizeFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.ReplaceAll(base, " ", "_")

	var result strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}

	if result.Len() == 0 {
		return "upload"
	}
	return result.String()
}
