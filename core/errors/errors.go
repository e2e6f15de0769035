// Package errors provides the typed errors shared by the kjvparse pipeline.
//
// Two failure kinds matter to callers: a LookupError when a marker or book
// heading cannot be found, and an InvariantError when the parsed corpus is
// structurally wrong. Both are fatal to a run; they are typed so tests and
// tools can inspect the offending marker, book or verse.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a marker, heading or record was not found
	ErrNotFound = errors.New("not found")
	// ErrInvariant indicates the parsed corpus violates a structural invariant
	ErrInvariant = errors.New("invariant violated")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// LookupError reports a marker that never matched a line at or after Start.
type LookupError struct {
	Marker string // Marker text that was searched for
	Start  int    // First line index that was searched
	Err    error  // Underlying error, if any
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("failed to find marker [%s] from line %d", e.Marker, e.Start)
}

func (e *LookupError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// Invariant kinds reported by InvariantError.
const (
	KindBookCount      = "book-count"
	KindCatalogIndex   = "catalog-index"
	KindMissingRange   = "missing-range"
	KindRangeOrder     = "range-order"
	KindDuplicateBook  = "duplicate-book"
	KindDuplicateVerse = "duplicate-verse"
	KindMissingBook    = "missing-book"
	KindMissingVerse   = "missing-verse"
	KindTextMismatch   = "text-mismatch"
	KindFixtureCount   = "fixture-count"
)

// InvariantError describes a structural defect in the parsed corpus or a
// divergence from the expected fixture text.
type InvariantError struct {
	Kind     string // One of the Kind* constants
	Title    string // Book title, if the violation is book scoped
	Chapter  int    // Chapter number, 0 when not verse scoped
	Verse    int    // Verse number, 0 when not verse scoped
	Expected string // Expected value (count, text)
	Actual   string // Actual value (count, text)
	Position int    // First differing character for text mismatches, -1 otherwise
	Detail   string // Free-form diagnostic, e.g. a unified diff
}

func (e *InvariantError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind)
	if e.Title != "" {
		fmt.Fprintf(&sb, ": %s", e.Title)
		switch {
		case e.Chapter > 0 && e.Verse > 0:
			fmt.Fprintf(&sb, " %d:%d", e.Chapter, e.Verse)
		case e.Chapter > 0:
			fmt.Fprintf(&sb, " %d", e.Chapter)
		}
	}
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&sb, ": expected %q, got %q", e.Expected, e.Actual)
	}
	if e.Position >= 0 && e.Kind == KindTextMismatch {
		fmt.Fprintf(&sb, " (first difference at %d)", e.Position)
	}
	return sb.String()
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a malformed input line or document
type ParseError struct {
	Format  string // Format being parsed (e.g., "fixture", "reference")
	Path    string // File path, if applicable
	Line    int    // 1-based line number, 0 when unknown
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if loc != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, loc, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewLookup creates a LookupError
func NewLookup(marker string, start int) *LookupError {
	return &LookupError{
		Marker: marker,
		Start:  start,
	}
}

// NewInvariant creates an InvariantError of the given kind for a book.
func NewInvariant(kind, title string) *InvariantError {
	return &InvariantError{
		Kind:     kind,
		Title:    title,
		Position: -1,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path string, line int, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Line:    line,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join wraps errors.Join for convenience
func Join(errs ...error) error {
	return errors.Join(errs...)
}
