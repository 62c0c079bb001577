// Package s3etag provides the top-level ETag computation entry points.
package s3etag

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	s3etagerrors "github.com/mayur19/s3-etag-generator/errors"
	"github.com/mayur19/s3-etag-generator/etagtypes"
	"github.com/mayur19/s3-etag-generator/internal/digest"
	"github.com/mayur19/s3-etag-generator/internal/executor"
	"github.com/mayur19/s3-etag-generator/internal/planner"
	"github.com/mayur19/s3-etag-generator/internal/validation"
)

const (
	// DefaultPartSize is the part size used when none is configured,
	// matching the 8MB default most S3 upload tools use.
	DefaultPartSize = 8 * 1024 * 1024

	// DefaultConcurrency is the number of parts hashed at once when no
	// limit is configured.
	DefaultConcurrency = executor.DefaultLimit
)

// Compute calculates the S3 multipart ETag of src.
//
// The source is split into parts of the configured size (all equal except
// possibly the last), each part is MD5-hashed with at most the configured
// number of parts in flight, and the part digests are combined into the
// quoted "<hex>-<partCount>" value S3 returns for multipart uploads.
//
// The result depends only on the source content and the part size; the
// concurrency limit never changes it.
//
// Returns:
//   - string: The ETag, including the surrounding double quotes
//   - error: Returns an error if the computation fails
//
// Errors:
//   - ErrInvalidConfig: If the part size or concurrency limit is not positive
//   - ErrInvalidInput: If the source is nil or reports a negative length
//   - ErrRead: If any part's byte range cannot be extracted
//
// Example:
//
//	src := s3etag.NewBytesSource(data)
//	etag, err := s3etag.Compute(ctx, src, s3etag.WithPartSizeMB(5))
//	if err != nil {
//	    return err
//	}
func Compute(ctx context.Context, src Source, opts ...etagtypes.ComputeOption) (string, error) {
	if src == nil {
		return "", s3etagerrors.NewError("compute", s3etagerrors.ErrInvalidInput).
			WithMessage("source cannot be nil")
	}

	cfg := newComputeConfig(opts...)
	return compute(ctx, src, cfg)
}

// ComputeFile calculates the S3 multipart ETag of the file at path.
//
// This is a convenience wrapper around Compute that opens the file on the
// configured filesystem (the OS filesystem by default), computes the ETag,
// and closes the file again.
func ComputeFile(ctx context.Context, path string, opts ...etagtypes.ComputeOption) (string, error) {
	if path == "" {
		return "", s3etagerrors.NewError("computeFile", s3etagerrors.ErrInvalidInput).
			WithMessage("path cannot be empty")
	}

	cfg := newComputeConfig(opts...)

	var filesystem fs.Filesystem
	if cfg.Filesystem != nil {
		filesystem = cfg.Filesystem
	} else {
		filesystem = billy.NewOSFS("/")
	}

	src, err := NewFileSource(filesystem, path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	etag, err := compute(ctx, src, cfg)
	if err != nil {
		var e *s3etagerrors.Error
		if errors.As(err, &e) && e.Path == "" {
			e.WithPath(path)
		}
		return "", err
	}

	return etag, nil
}

// newComputeConfig applies options on top of the defaults.
func newComputeConfig(opts ...etagtypes.ComputeOption) *etagtypes.ComputeConfig {
	cfg := &etagtypes.ComputeConfig{
		PartSize:         DefaultPartSize,
		Concurrency:      DefaultConcurrency,
		SinglePartFormat: etagtypes.SinglePartSuffixed,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// compute runs the plan -> digest -> combine pipeline.
func compute(ctx context.Context, src Source, cfg *etagtypes.ComputeConfig) (string, error) {
	if err := validation.PartSize(cfg.PartSize); err != nil {
		return "", err
	}
	if err := validation.Concurrency(cfg.Concurrency); err != nil {
		return "", err
	}

	length := src.Len()
	if err := validation.SourceLength(length); err != nil {
		return "", err
	}

	chunks, err := planner.Plan(length, cfg.PartSize)
	if err != nil {
		return "", err
	}

	// One write-once slot per chunk. Slots are disjoint and read only
	// after the executor's barrier, so no locking is needed.
	parts := make([][]byte, len(chunks))
	var hashed int64

	exec := executor.New(cfg.Concurrency)
	err = exec.Run(ctx, len(chunks), func(ctx context.Context, index int) error {
		sum, err := digest.Part(ctx, src, chunks[index])
		if err != nil {
			return err
		}
		parts[index] = sum
		if cfg.ProgressTracker != nil {
			cfg.ProgressTracker.Update(atomic.AddInt64(&hashed, chunks[index].Len()), length)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	var etag string
	if len(chunks) == 1 && cfg.SinglePartFormat == etagtypes.SinglePartPlain {
		if len(parts[0]) != digest.Size {
			return "", s3etagerrors.NewChunkError("combine", 0, s3etagerrors.ErrIncompleteDigest)
		}
		etag = digest.FormatPlain(parts[0])
	} else {
		sum, err := digest.Combine(parts)
		if err != nil {
			return "", err
		}
		etag = digest.Format(sum, len(chunks))
	}

	if cfg.ProgressTracker != nil {
		cfg.ProgressTracker.Complete()
	}

	return etag, nil
}
