// Package errors provides error types and handling for ETag computations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a failed operation with context about where it failed.
// It wraps the underlying error with the operation name and, when known,
// the source path and chunk index.
type Error struct {
	// Op is the operation that failed (e.g., "compute", "digestPart")
	Op string

	// Path is the source file path (if applicable)
	Path string

	// Chunk is the chunk index the failure belongs to, or -1 when the
	// failure is not tied to a single chunk
	Chunk int

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Path != "" && e.Chunk >= 0 {
		return fmt.Sprintf("s3etag.%s %s chunk %d: %v", e.Op, e.Path, e.Chunk, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("s3etag.%s %s: %v", e.Op, e.Path, e.Err)
	}
	if e.Chunk >= 0 {
		return fmt.Sprintf("s3etag.%s chunk %d: %v", e.Op, e.Chunk, e.Err)
	}
	return fmt.Sprintf("s3etag.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithPath adds source path context to an existing error.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithChunk adds chunk index context to an existing error.
func (e *Error) WithChunk(index int) *Error {
	e.Chunk = index
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:    op,
		Chunk: -1,
		Err:   err,
	}
}

// NewChunkError creates a new Error carrying a chunk index.
func NewChunkError(op string, chunk int, err error) *Error {
	return &Error{
		Op:    op,
		Chunk: chunk,
		Err:   err,
	}
}

// Sentinel errors for common failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates a non-positive part size or concurrency limit
	ErrInvalidConfig = errors.New("s3etag: invalid configuration")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3etag: invalid input")

	// ErrRead indicates that a byte range could not be extracted from the source
	ErrRead = errors.New("s3etag: read failed")

	// ErrIncompleteDigest indicates a part digest slot was unfilled at combine
	// time; this is an internal invariant violation, not a recoverable condition
	ErrIncompleteDigest = errors.New("s3etag: part digest missing")

	// ErrObjectNotFound indicates that the remote object does not exist
	ErrObjectNotFound = errors.New("s3etag: object not found")

	// ErrETagMismatch indicates the local and remote ETags differ
	ErrETagMismatch = errors.New("s3etag: etag mismatch")
)

// IsInvalidConfig checks if an error indicates invalid configuration.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRead checks if an error indicates a failed source read.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsRead(err error) bool {
	return errors.Is(err, ErrRead)
}

// IsObjectNotFound checks if an error indicates that an object was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsETagMismatch checks if an error indicates an ETag mismatch.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsETagMismatch(err error) bool {
	return errors.Is(err, ErrETagMismatch)
}
