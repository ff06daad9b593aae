package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier read from an input file.
//
// The rules are deliberately loose, since IDs are opaque and show up as
// tooltips:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 1024 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node ID cannot be empty")
	}

	if len(id) > 1024 {
		return New(ErrCodeInvalidGraph, "node ID too long (max 1024 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node ID %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePath validates a relative path used inside a URL or cache
// namespace. It prevents path traversal and ensures reasonable length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateOutputPath validates the file an artifact is written to.
// Absolute paths are fine here; the path only needs to name a file whose
// extension matches one of exts (case-insensitive, without the dot).
// An empty exts accepts any extension.
func ValidateOutputPath(path string, exts ...string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || filepath.Base(path) == "." {
		return New(ErrCodeInvalidPath, "output path %q names a directory, not a file", path)
	}

	if len(exts) == 0 {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !slices.Contains(exts, ext) {
		return New(ErrCodeInvalidPath, "output path %q must end in .%s", path, strings.Join(exts, " or ."))
	}
	return nil
}
