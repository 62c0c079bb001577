// Package digest computes per-part MD5 digests and combines them into the
// final multipart ETag value.
//
// MD5 is used because it is the algorithm S3 applies when building
// multipart ETags. This is a compatibility requirement, not a security
// property; the digests carry no authentication or tamper-detection
// guarantees.
package digest

import (
	"context"
	"crypto/md5" //nolint:gosec // S3 ETag compatibility requires MD5
	"fmt"
	"hash"
	"io"
	"sync"

	"github.com/mayur19/s3-etag-generator/errors"
	"github.com/mayur19/s3-etag-generator/etagtypes"
)

// Size is the length in bytes of a single part digest.
const Size = md5.Size

// hasherPool reuses MD5 hash state across parts to reduce allocations.
var hasherPool = sync.Pool{
	New: func() interface{} {
		return md5.New()
	},
}

func getHasher() hash.Hash {
	h, _ := hasherPool.Get().(hash.Hash)
	return h
}

func putHasher(h hash.Hash) {
	h.Reset()
	hasherPool.Put(h)
}

// Part reads exactly the byte range [chunk.Start, chunk.End) from src and
// returns the raw 16-byte MD5 digest of those bytes.
//
// The digest is returned in binary form, not hex, because the combine step
// hashes the concatenation of the raw digests. Returns ErrRead if the
// range cannot be extracted in full.
func Part(ctx context.Context, src io.ReaderAt, chunk etagtypes.Chunk) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewChunkError("digestPart", chunk.Index, err)
	}

	h := getHasher()
	defer putHasher(h)

	section := io.NewSectionReader(src, chunk.Start, chunk.Len())
	n, err := io.Copy(h, section)
	if err != nil {
		return nil, errors.NewChunkError("digestPart", chunk.Index, errors.ErrRead).
			WithMessage(err.Error())
	}
	if n != chunk.Len() {
		return nil, errors.NewChunkError("digestPart", chunk.Index, errors.ErrRead).
			WithMessage(fmt.Sprintf("short read: got %d bytes, want %d", n, chunk.Len()))
	}

	return h.Sum(nil), nil
}
