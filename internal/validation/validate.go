// Package validation provides centralized input validation logic.
//
// All configuration is validated before any I/O starts, so a bad part size
// or concurrency limit is reported synchronously.
package validation

import (
	"fmt"

	"github.com/mayur19/s3-etag-generator/errors"
)

// PartSize validates that a part size is usable for chunk planning.
// Returns ErrInvalidConfig if the part size is not positive.
func PartSize(size int64) error {
	if size <= 0 {
		return errors.NewError("validatePartSize", errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("part size must be positive, got %d", size))
	}
	return nil
}

// Concurrency validates that a concurrency limit is usable for scheduling.
// Returns ErrInvalidConfig if the limit is less than one.
func Concurrency(limit int) error {
	if limit <= 0 {
		return errors.NewError("validateConcurrency", errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("concurrency limit must be at least 1, got %d", limit))
	}
	return nil
}

// SourceLength validates a source length reported by a Source implementation.
// Returns ErrInvalidInput if the length is negative.
func SourceLength(length int64) error {
	if length < 0 {
		return errors.NewError("validateSourceLength", errors.ErrInvalidInput).
			WithMessage(fmt.Sprintf("source length cannot be negative, got %d", length))
	}
	return nil
}
