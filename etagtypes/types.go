// Package etagtypes provides shared type definitions for the s3etag module.
package etagtypes

import (
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// Chunk describes one contiguous byte range of a source.
// Chunks in a plan are ordered by index, non-overlapping, and cover the
// source exactly; only the final chunk may be shorter than the part size.
type Chunk struct {
	// Index is the zero-based position of the chunk in the plan
	Index int

	// Start is the inclusive byte offset where the chunk begins
	Start int64

	// End is the exclusive byte offset where the chunk ends
	End int64
}

// Len returns the chunk length in bytes.
func (c Chunk) Len() int64 {
	return c.End - c.Start
}

// SinglePartFormat selects how the ETag is rendered when the plan holds
// exactly one chunk.
type SinglePartFormat int

const (
	// SinglePartSuffixed combines the single part digest and appends "-1",
	// the same path taken for multi-part plans.
	SinglePartSuffixed SinglePartFormat = iota

	// SinglePartPlain returns the bare part digest, matching the ETag S3
	// assigns to objects uploaded without multipart.
	SinglePartPlain
)

// ProgressTracker receives callbacks as parts are hashed.
type ProgressTracker interface {
	// Update is called after each part completes with the cumulative number
	// of bytes hashed and the total source length.
	Update(bytesHashed, totalBytes int64)

	// Complete is called once after the final ETag has been assembled.
	Complete()
}

// ComputeConfig holds the resolved configuration for a single computation.
type ComputeConfig struct {
	// PartSize is the part size in bytes. Must match the part size used
	// for the upload being verified.
	PartSize int64

	// Concurrency is the maximum number of parts hashed at once
	Concurrency int

	// Filesystem is the filesystem used to open file-backed sources
	Filesystem fs.Filesystem

	// ProgressTracker receives progress callbacks (optional)
	ProgressTracker ProgressTracker

	// SinglePartFormat selects the rendering for one-chunk plans
	SinglePartFormat SinglePartFormat
}

// ComputeOption configures a single ETag computation.
type ComputeOption func(*ComputeConfig)

// VerifyResult describes the outcome of comparing a local source against a
// stored S3 object.
type VerifyResult struct {
	// Match reports whether the local and remote ETags are equal
	Match bool

	// LocalETag is the ETag computed from the local source, quoted
	LocalETag string

	// RemoteETag is the ETag reported by S3, as returned in the header
	RemoteETag string

	// PartCount is the part count encoded in the remote ETag, or 1 when the
	// remote ETag carries no part suffix
	PartCount int

	// LocalPartCount is the number of parts the local plan produced with
	// the configured part size. A value different from PartCount means the
	// part size does not match the one used for the upload.
	LocalPartCount int

	// RemoteSize is the object size reported by HeadObject
	RemoteSize int64
}
