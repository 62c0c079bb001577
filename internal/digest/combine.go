package digest

import (
	"encoding/hex"
	"strconv"

	"github.com/mayur19/s3-etag-generator/errors"
)

// Combine concatenates the raw part digests in index order and returns the
// MD5 digest of the concatenation.
//
// Every slot must hold a full 16-byte digest. An unfilled or short slot is
// an internal invariant violation and reported as ErrIncompleteDigest;
// given a correct scheduler this is unreachable.
func Combine(parts [][]byte) ([]byte, error) {
	buf := make([]byte, 0, Size*len(parts))
	for i, part := range parts {
		if len(part) != Size {
			return nil, errors.NewChunkError("combine", i, errors.ErrIncompleteDigest)
		}
		buf = append(buf, part...)
	}

	h := getHasher()
	defer putHasher(h)
	h.Write(buf)
	return h.Sum(nil), nil
}

// Format renders a combined digest as the quoted ETag S3 returns for a
// multipart-uploaded object: "<32 lowercase hex chars>-<partCount>".
// The surrounding double quotes are part of the value, matching the
// literal ETag response header.
func Format(sum []byte, partCount int) string {
	return `"` + hex.EncodeToString(sum) + "-" + strconv.Itoa(partCount) + `"`
}

// FormatPlain renders a single part digest as the quoted ETag of an object
// uploaded without multipart.
func FormatPlain(sum []byte) string {
	return `"` + hex.EncodeToString(sum) + `"`
}
