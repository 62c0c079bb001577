// Package s3etag computes the Amazon S3 multipart-upload ETag for a local
// file on the client side, so callers can verify upload integrity without
// re-downloading the object.
//
// The computation splits the source into fixed-size parts, hashes each
// part with MD5 under a bounded concurrency limit, and combines the part
// digests using S3's documented multipart ETag convention: the MD5 of the
// concatenated part digests, suffixed with the part count.
//
// The part size must match the part size used for the upload; with the
// same part size the result matches the ETag header S3 returns for a
// multipart-uploaded object.
//
// Example usage:
//
//	etag, err := s3etag.ComputeFile(ctx, "/data/archive.tar",
//	    s3etag.WithPartSizeMB(8),
//	    s3etag.WithConcurrency(4),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(etag) // "0f7cd93a035d29771da96c868a10b7cb-3"
//
// Upload transport, retries, and credential handling are out of scope;
// the verify package compares computed values against live objects.
package s3etag
