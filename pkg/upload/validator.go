package upload

import (
	"bytes"
	"path/filepath"
	"strings"
)

// ValidationResult contains the result of image validation
type ValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed image types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
}

// Allowed extensions (strict whitelist, images only)
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Strict MIME types - DO NOT include application/octet-stream
var strictMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImage performs 3-layer validation on an uploaded image:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist (application/octet-stream rejected)
func ValidateImage(filename string, data []byte, detectedMIME string) ValidationResult {
	result := ValidationResult{
		DetectedMIME: detectedMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if !allowedExtensions[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	if !strictMIMETypes[detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false // Unknown extension
	}

	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// AllowedExtensions returns the whitelist for error messages
func AllowedExtensions() []string {
	extensions := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		extensions = append(extensions, ext)
	}
	return extensions
}
