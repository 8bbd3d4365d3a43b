// Package errors provides standardized error types and helpers for rsb.
//
// Query errors (InvalidChapterError, InvalidVerseError, InvalidInputError,
// InvalidVerseRangeError) are fatal to the current lookup only. Load errors
// (ParseError, IOError, NotFoundError) describe a corpus that cannot be served.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "book", "corpus", "cache entry")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
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

// Is reports ErrInvalidInput even when an underlying error is wrapped.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
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

// ParseError represents a malformed corpus file or artifact.
type ParseError struct {
	Format  string // Format being parsed (e.g., "corpus", "OSIS", "cache")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is reports ErrInvalidInput even when an underlying error is wrapped.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidChapterError reports a chapter beyond the end of a book.
// Num is the zero-based chapter index that was requested.
type InvalidChapterError struct {
	Num      int
	Title    string
	Chapters int
}

func (e *InvalidChapterError) Error() string {
	return fmt.Sprintf("Invalid chapter %d of book %s (%d chapters).", e.Num+1, e.Title, e.Chapters)
}

func (e *InvalidChapterError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidVerseError reports a verse beyond the end of a chapter.
// Num and Chapter are zero-based indices; the message shows them one-based.
type InvalidVerseError struct {
	Num     int
	Title   string
	Chapter int
	Verses  int
}

func (e *InvalidVerseError) Error() string {
	return fmt.Sprintf("Invalid verse %d of book %s, chapter %d (%d verses).", e.Num+1, e.Title, e.Chapter+1, e.Verses)
}

func (e *InvalidVerseError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidInputError reports a chapter or verse token that is not a positive integer.
type InvalidInputError struct {
	Token string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("Chapter or verse provided is not valid: %s", e.Token)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidVerseRangeError reports a verse range whose bounds are not strictly increasing.
type InvalidVerseRangeError struct {
	Token string
}

func (e *InvalidVerseRangeError) Error() string {
	return fmt.Sprintf("Invalid verse range: %s", e.Token)
}

func (e *InvalidVerseRangeError) Unwrap() error {
	return ErrInvalidInput
}

// FormattingError wraps a failure while writing rendered text.
type FormattingError struct {
	Err error
}

func (e *FormattingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Formatting error: %v", e.Err)
	}
	return "Formatting error"
}

func (e *FormattingError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// Is reports ErrInternal for every FormattingError, whatever it wraps.
func (e *FormattingError) Is(target error) bool {
	return target == ErrInternal
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
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
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
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

// IsQueryError reports whether err is one of the lookup errors that end a
// single query without affecting the loaded corpus.
func IsQueryError(err error) bool {
	var (
		chapterErr *InvalidChapterError
		verseErr   *InvalidVerseError
		inputErr   *InvalidInputError
		rangeErr   *InvalidVerseRangeError
		fmtErr     *FormattingError
	)
	return errors.As(err, &chapterErr) ||
		errors.As(err, &verseErr) ||
		errors.As(err, &inputErr) ||
		errors.As(err, &rangeErr) ||
		errors.As(err, &fmtErr)
}
