package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
)

// Error types for the b64x command line tool
type ErrorType string

const (
	// Codec errors
	ErrorTypeEncode ErrorType = "encode"
	ErrorTypeDecode ErrorType = "decode"

	// File errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"
	ErrorTypeFile         ErrorType = "file"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// CodecError represents a failed encode or decode of one input
type CodecError struct {
	Type       ErrorType
	Operation  string
	Source     string // file name or "-" for stdin/arguments
	Alphabet   string
	Underlying error
	Timestamp  time.Time
}

// NewCodecError creates a new codec error. Operations starting with
// "decode" or "to-" are decode errors, everything else encode errors.
func NewCodecError(op string, err error) *CodecError {
	errorType := ErrorTypeEncode
	if strings.HasPrefix(op, "decode") || strings.HasPrefix(op, "to-") {
		errorType = ErrorTypeDecode
	}
	return &CodecError{
		Type:       errorType,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithSource adds the input name to the error
func (e *CodecError) WithSource(source string) *CodecError {
	e.Source = source
	return e
}

// WithAlphabet adds the alphabet name to the error
func (e *CodecError) WithAlphabet(name string) *CodecError {
	e.Alphabet = name
	return e
}

// Error implements the error interface
func (e *CodecError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed", e.Operation)
	if e.Source != "" {
		fmt.Fprintf(&sb, " for %s", e.Source)
	}
	if e.Alphabet != "" {
		fmt.Fprintf(&sb, " (alphabet %s)", e.Alphabet)
	}
	fmt.Fprintf(&sb, ": %v", e.Underlying)
	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As
func (e *CodecError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFile
	switch {
	case isPermissionError(err):
		errorType = ErrorTypePermission
	case errors.Is(err, fs.ErrNotExist):
		errorType = ErrorTypeFileNotFound
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// isPermissionError checks if the error is a permission error
func isPermissionError(err error) bool {
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	errStr := err.Error()
	return errStr == "permission denied" || errStr == "access denied"
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected, so a MultiError can
// be returned directly as an error.
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
