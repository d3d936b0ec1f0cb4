// Package errors provides a structured error type hierarchy for the flowdex CLI.
//
// This package defines base error types for common error conditions, wrapped error
// types that add contextual information, and helper functions for error wrapping
// and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - resource not found
//   - ErrInvalid - validation failed
//   - ErrDiscovery - file discovery failed (fatal, aborts the run)
//   - ErrParse - a document could not be parsed (file-scoped, isolated)
//   - ErrIO - file I/O error
//
// Wrapped error types (add context):
//   - DocumentError{Path, Err} - per-file processing errors
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrNotFound
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "loadIndex")
//
//	// Use structured error types
//	return &errors.DocumentError{Path: "workflows/x.json", Err: errors.ErrParse}
//
//	// Check error types
//	if errors.IsParse(err) {
//	    // skip the file, keep the batch going
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrDiscovery indicates that file discovery failed. Discovery
	// errors are fatal; per-file isolation only applies after
	// discovery has produced a path set.
	ErrDiscovery = baseError("discovery failed")

	// ErrParse indicates a single document could not be parsed. Parse
	// errors are file-scoped: the file is skipped and the batch
	// continues.
	ErrParse = baseError("parse failed")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// DocumentError represents an error scoped to one workflow file. It is
// the unit of the pipeline's error isolation: a DocumentError excludes
// its file from the output but never aborts the run.
type DocumentError struct {
	// Path is the file the error belongs to.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %s", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsDiscovery reports whether err is or wraps ErrDiscovery.
func IsDiscovery(err error) bool {
	return errors.Is(err, ErrDiscovery)
}

// IsParse reports whether err is or wraps ErrParse.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// AsDocumentError reports whether err can be typed as a *DocumentError.
func AsDocumentError(err error) (*DocumentError, bool) {
	var de *DocumentError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
