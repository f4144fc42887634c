package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// vertexIDRegex matches vertex identifiers accepted over the wire:
// letters, digits, underscores and dashes, starting with a letter or digit.
var vertexIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidateVertexID validates a vertex identifier from external input.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 64 characters
//   - Letters, digits, underscores and dashes only
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidVertex, "vertex id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidVertex, "vertex id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVertex, "vertex id contains control characters")
		}
	}

	if !vertexIDRegex.MatchString(id) {
		return New(ErrCodeInvalidVertex, "invalid vertex id: %q", id)
	}

	return nil
}

// renderFormats lists the artifact formats the render layer supports.
var renderFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"pdf":  true,
	"dot":  true,
	"json": true,
}

// ValidateFormat validates a render output format.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !renderFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q (expected svg, png, pdf, dot, or json)", format)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// imageExtensions lists the raster formats the segmenter can decode.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ValidateImagePath validates a source image path, including its extension.
func ValidateImagePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	idx := strings.LastIndex(path, ".")
	if idx < 0 || !imageExtensions[strings.ToLower(path[idx:])] {
		return New(ErrCodeInvalidImage, "unsupported image type: %q (expected png, jpg, or gif)", path)
	}

	return nil
}
