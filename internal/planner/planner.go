// Package planner creates chunk plans for multipart ETag computation.
//
// A plan covers [0, length) with contiguous chunks of the configured part
// size; only the final chunk may be shorter. Planning is a pure function
// of the inputs and performs no I/O.
package planner

import (
	"fmt"

	"github.com/mayur19/s3-etag-generator/errors"
	"github.com/mayur19/s3-etag-generator/etagtypes"
)

// Plan splits length bytes into chunks of chunkSize bytes.
//
// A zero-length source still yields exactly one zero-length chunk so the
// ETag format stays well-defined. Returns ErrInvalidConfig for a
// non-positive chunk size and ErrInvalidInput for a negative length.
func Plan(length, chunkSize int64) ([]etagtypes.Chunk, error) {
	if chunkSize <= 0 {
		return nil, errors.NewError("plan", errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("chunk size must be positive, got %d", chunkSize))
	}
	if length < 0 {
		return nil, errors.NewError("plan", errors.ErrInvalidInput).
			WithMessage(fmt.Sprintf("length cannot be negative, got %d", length))
	}

	total := Count(length, chunkSize)
	chunks := make([]etagtypes.Chunk, 0, total)
	for i := 0; i < total; i++ {
		start := int64(i) * chunkSize
		end := start + chunkSize
		if end > length {
			end = length
		}
		chunks = append(chunks, etagtypes.Chunk{
			Index: i,
			Start: start,
			End:   end,
		})
	}

	return chunks, nil
}

// Count returns the number of chunks a plan for length bytes will hold,
// minimum one. chunkSize must be positive.
//
// The division is split rather than written as the usual
// (length+chunkSize-1)/chunkSize rounding, which overflows for chunk
// sizes near the int64 maximum.
func Count(length, chunkSize int64) int {
	if length == 0 {
		return 1
	}
	count := length / chunkSize
	if length%chunkSize != 0 {
		count++
	}
	return int(count)
}
