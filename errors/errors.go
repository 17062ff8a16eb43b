// Package errors provides the error taxonomy for tablemerge.
//
// Sentinel errors identify a failure class and are matched with errors.Is.
// Typed errors carry the details of a single failure and report their class
// through an Is method, so callers can branch on either form:
//
//	if errors.Is(err, errors.ErrInvalidKey) {
//	    // offer the user the list of common columns again
//	}
//
//	var ufe *errors.UnsupportedFormatError
//	if errors.As(err, &ufe) {
//	    fmt.Println("cannot read", ufe.Path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
var New = errors.New

// Is, As and Unwrap mirror the standard library so importing this package
// does not require a second errors import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

var (
	// ErrUnsupportedFormat indicates an input file whose format cannot be parsed.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidKey indicates a merge key that is empty or not a common column.
	ErrInvalidKey = errors.New("invalid key")

	// ErrNotReady indicates a merge requested before both datasets and a key exist.
	ErrNotReady = errors.New("session not ready")

	// ErrNoResult indicates an export requested before any merge ran.
	ErrNoResult = errors.New("no merge result")

	// ErrParse indicates malformed input in an otherwise supported format.
	ErrParse = errors.New("parse error")
)

// UnsupportedFormatError reports a file the parsing collaborator cannot read.
type UnsupportedFormatError struct {
	Format string
	Path   string
}

// Error implements the error interface
func (e *UnsupportedFormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unsupported file type %q for %s", e.Format, e.Path)
	}
	return fmt.Sprintf("unsupported file type %q", e.Format)
}

// Is implements errors.Is support
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// NewUnsupportedFormatError creates a new UnsupportedFormatError
func NewUnsupportedFormatError(format, path string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format, Path: path}
}

// InvalidKeyError reports a rejected merge key.
type InvalidKeyError struct {
	Key    string
	Reason string
}

// Error implements the error interface
func (e *InvalidKeyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid merge key: %s", e.Reason)
	}
	return fmt.Sprintf("invalid merge key %q: %s", e.Key, e.Reason)
}

// Is implements errors.Is support
func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}

// NewInvalidKeyError creates a new InvalidKeyError
func NewInvalidKeyError(key, reason string) *InvalidKeyError {
	return &InvalidKeyError{Key: key, Reason: reason}
}

// ParseError reports malformed input. Line is 1-based and zero when unknown.
type ParseError struct {
	Format string
	Line   int
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s at line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError
func NewParseError(format string, line int, err error) *ParseError {
	return &ParseError{Format: format, Line: line, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Wrap annotates err with a message. It returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
