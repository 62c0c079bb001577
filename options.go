// Package s3etag provides functional options for configuring ETag
// computations. These options follow the functional options pattern for
// clean, composable configuration.
package s3etag

import (
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/mayur19/s3-etag-generator/etagtypes"
)

// WithPartSize sets the part size in bytes.
// The value is validated before any work starts; a non-positive part size
// fails the computation with ErrInvalidConfig.
func WithPartSize(partSize int64) etagtypes.ComputeOption {
	return func(c *etagtypes.ComputeConfig) {
		c.PartSize = partSize
	}
}

// WithPartSizeMB sets the part size in megabytes (MiB), the unit most S3
// upload tools expose. Equivalent to WithPartSize(mb * 1024 * 1024).
func WithPartSizeMB(mb int) etagtypes.ComputeOption {
	return func(c *etagtypes.ComputeConfig) {
		c.PartSize = int64(mb) * 1024 * 1024
	}
}

// WithConcurrency sets the maximum number of parts hashed at once.
// Default is 4. The limit only affects scheduling; the resulting ETag is
// identical for any limit >= 1.
func WithConcurrency(limit int) etagtypes.ComputeOption {
	return func(c *etagtypes.ComputeConfig) {
		c.Concurrency = limit
	}
}

// WithFilesystem sets a custom filesystem implementation for file-backed
// sources. This allows using in-memory filesystems for testing or virtual
// filesystems. If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) etagtypes.ComputeOption {
	return func(c *etagtypes.ComputeConfig) {
		c.Filesystem = filesystem
	}
}

// WithProgress sets a progress tracker that is updated as parts complete.
func WithProgress(tracker etagtypes.ProgressTracker) etagtypes.ComputeOption {
	return func(c *etagtypes.ComputeConfig) {
		c.ProgressTracker = tracker
	}
}

// WithSinglePartFormat selects how the ETag is rendered when the plan
// holds exactly one chunk. The default, etagtypes.SinglePartSuffixed,
// combines and appends "-1" like the multi-part path;
// etagtypes.SinglePartPlain matches the ETag S3 assigns to objects
// uploaded without multipart.
func WithSinglePartFormat(format etagtypes.SinglePartFormat) etagtypes.ComputeOption {
	return func(c *etagtypes.ComputeConfig) {
		c.SinglePartFormat = format
	}
}
