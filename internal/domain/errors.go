package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// Conversion sentinels. Every typed conversion error matches exactly one of these.
	ErrMissingInput     = errors.New("missing input")
	ErrUnsupportedRoute = errors.New("unsupported conversion")
	ErrDecode           = errors.New("decode failed")
	ErrParse            = errors.New("parse failed")
	ErrRender           = errors.New("render failed")
	ErrEmptyOutput      = errors.New("empty output")
	ErrUpload           = errors.New("upload failed")
)

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// ConflictError represents a resource conflict with details about the existing resource
// Implements HTTPError interface for extensible error handling
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (object, record)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// MissingInputError means the caller omitted the payload, the file name or the target format.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing %s", e.Field)
}

func (e *MissingInputError) StatusCode() int      { return http.StatusBadRequest }
func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// UnsupportedRouteError means the (source, target) pair is not in the conversion matrix.
type UnsupportedRouteError struct {
	Source string
	Target string
}

func (e *UnsupportedRouteError) Error() string {
	return fmt.Sprintf("conversion from %s to %s is not supported", quoteEmpty(e.Source), quoteEmpty(e.Target))
}

func (e *UnsupportedRouteError) StatusCode() int      { return http.StatusBadRequest }
func (e *UnsupportedRouteError) Is(target error) bool { return target == ErrUnsupportedRoute }

// DecodeError means the payload is not a valid image in the claimed format.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s image: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) StatusCode() int      { return http.StatusBadRequest }
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ParseError means a document payload could not be parsed in the claimed format.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error        { return e.Err }
func (e *ParseError) StatusCode() int      { return http.StatusBadRequest }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// RenderError means an external converter process failed.
// Message carries the process output so callers can surface it.
type RenderError struct {
	Tool    string
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s conversion failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s conversion failed: %v: %s", e.Tool, e.Err, e.Message)
}

func (e *RenderError) Unwrap() error        { return e.Err }
func (e *RenderError) StatusCode() int      { return http.StatusInternalServerError }
func (e *RenderError) Is(target error) bool { return target == ErrRender }

// EmptyOutputError means a routine produced an implausibly small artifact.
type EmptyOutputError struct {
	Route string
	Size  int
	Min   int
}

func (e *EmptyOutputError) Error() string {
	return fmt.Sprintf("%s produced %d bytes (minimum %d)", e.Route, e.Size, e.Min)
}

func (e *EmptyOutputError) StatusCode() int      { return http.StatusInternalServerError }
func (e *EmptyOutputError) Is(target error) bool { return target == ErrEmptyOutput }

// UploadError wraps an object storage failure.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error        { return e.Err }
func (e *UploadError) StatusCode() int      { return http.StatusInternalServerError }
func (e *UploadError) Is(target error) bool { return target == ErrUpload }

func quoteEmpty(s string) string {
	if s == "" {
		return `""`
	}
	return s
}
