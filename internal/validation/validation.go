// Package validation checks user-supplied paths before they reach the file
// system.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrNotDirectory     = errors.New("path is not a directory")
)

func invalid(field, path string, err error) error {
	return &apperrors.ValidationError{Field: field, Value: path, Message: err.Error(), Err: err}
}

// ValidatePath rejects empty paths, overlong paths and paths containing NUL
// or other control characters. field names the setting in the error.
func ValidatePath(field, path string) error {
	if path == "" {
		return invalid(field, path, ErrEmptyPath)
	}
	if len(path) > MaxPathLength {
		return invalid(field, path, ErrPathTooLong)
	}
	for _, r := range path {
		if r == 0 {
			return invalid(field, path, fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter))
		}
		if unicode.IsControl(r) {
			return invalid(field, path, fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter))
		}
	}
	return nil
}

// ValidateOutputPath checks a file the tool is about to create or replace.
// The path must be valid, must not name an existing directory and must not
// start with "-", which is almost always a misplaced flag.
func ValidateOutputPath(field, path string) error {
	if err := ValidatePath(field, path); err != nil {
		return err
	}
	if strings.HasPrefix(filepath.Base(path), "-") {
		return invalid(field, path, fmt.Errorf("%w: file name cannot start with hyphen", ErrInvalidCharacter))
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return invalid(field, path, ErrIsDirectory)
	}
	return nil
}

// ValidateCorpusDir checks that dir exists and is a directory.
func ValidateCorpusDir(field, dir string) error {
	if err := ValidatePath(field, dir); err != nil {
		return err
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return apperrors.NewIO("open corpus", dir, err)
	}
	if !fi.IsDir() {
		return invalid(field, dir, ErrNotDirectory)
	}
	return nil
}
