package errors

import (
	"strings"
	"unicode"
)

// IsRemoteRef reports whether an image reference points at a remote
// resource. Only http and https are considered remote; every other
// reference is resolved against the local resource root.
func IsRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ValidatePath validates a resource-relative file path for safety.
// It prevents path traversal out of the resource root.
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !IsRemoteRef(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// ValidateContainerKey validates a container key supplied by a caller
// (CLI argument or URL path segment) before it is looked up.
func ValidateContainerKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "container key cannot be empty")
	}
	if len(key) > 128 {
		return New(ErrCodeInvalidInput, "container key too long (max 128 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == '/' || r == '\\' {
			return New(ErrCodeInvalidInput, "container key contains invalid characters: %q", key)
		}
	}
	return nil
}
