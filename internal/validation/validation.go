// Package validation checks command-line input before it reaches the
// pipeline: file paths, book titles and marker strings.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Input limits.
const (
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxTitleLength bounds a book title. The longest KJV title is well
	// under 100 characters.
	MaxTitleLength = 256
	// MaxMarkerLength bounds a marker string.
	MaxMarkerLength = 1024
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrTitleTooLong     = errors.New("title too long")
	ErrEmptyMarker      = errors.New("marker cannot be empty")
	ErrMarkerTooLong    = errors.New("marker too long")
)

// ValidatePath performs path validation without requiring a base directory.
// It checks length limits and rejects null bytes and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	return rejectControl(path)
}

// ValidateTitle checks a book title used for exact lookups. Titles are
// matched verbatim, so surrounding whitespace is rejected rather than
// trimmed.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if title != strings.TrimSpace(title) {
		return fmt.Errorf("%w: leading or trailing whitespace", ErrInvalidCharacter)
	}
	return rejectControl(title)
}

// ValidateMarker checks a marker string. Tabs are allowed since markers
// are whitespace-normalized before matching.
func ValidateMarker(marker string) error {
	if strings.TrimSpace(marker) == "" {
		return ErrEmptyMarker
	}
	if len(marker) > MaxMarkerLength {
		return ErrMarkerTooLong
	}
	for _, r := range marker {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

func rejectControl(s string) error {
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}
