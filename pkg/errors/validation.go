package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// DeckExtensions are the input file extensions slidelint can read.
var DeckExtensions = []string{".json", ".pptx"}

// ValidateDeckPath validates a deck input path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be one of DeckExtensions ("-" means stdin and is allowed)
func ValidateDeckPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if path == "-" {
		return nil
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(DeckExtensions, ext) {
		return New(ErrCodeInvalidFormat, "unsupported deck format %q (want %s)", ext, strings.Join(DeckExtensions, ", "))
	}
	return nil
}

// ValidateFormat checks that format is one of allowed, case-insensitively.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want %s)", format, strings.Join(allowed, ", "))
}

// ValidateSlideNumber checks a 1-based slide number against a slide count.
func ValidateSlideNumber(n, count int) error {
	if n < 1 || n > count {
		return New(ErrCodeIndexOutOfBounds, "slide %d out of range (document has %d slides)", n, count)
	}
	return nil
}
