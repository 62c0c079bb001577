// Package verify compares locally computed ETags against objects stored
// in S3.
//
// Only the object's metadata is fetched (HeadObject); the object body is
// never downloaded. The part count encoded in the remote ETag decides
// whether the local computation takes the multipart or single-part path.
package verify

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3etag "github.com/mayur19/s3-etag-generator"
	"github.com/mayur19/s3-etag-generator/errors"
	"github.com/mayur19/s3-etag-generator/etagtypes"
	"github.com/mayur19/s3-etag-generator/internal/planner"
)

// Verifier compares local sources against stored S3 objects.
type Verifier struct {
	client HeadObjectAPI
}

// NewWithClient creates a Verifier with a custom HeadObjectAPI
// implementation. This is primarily used for testing with mocked clients.
func NewWithClient(client HeadObjectAPI) *Verifier {
	return &Verifier{client: client}
}

// Object fetches the stored object's ETag and compares it with the ETag
// computed from src.
//
// When the remote ETag carries a "-<count>" part suffix the local
// computation uses the regular multipart path; when it does not, the
// object was uploaded without multipart and the local computation renders
// the bare part digest instead. The configured part size must still match
// the part size used for the upload; the result's PartCount and
// LocalPartCount fields expose the remote and local part counts so a
// part size mismatch can be told apart from corrupted content.
//
// A mismatch is not an error: the result's Match field reports it. Use
// Ensure when a mismatch should fail.
func (v *Verifier) Object(
	ctx context.Context,
	bucket, key string,
	src s3etag.Source,
	opts ...etagtypes.ComputeOption,
) (*etagtypes.VerifyResult, error) {
	if bucket == "" {
		return nil, errors.NewError("verify", errors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}
	if key == "" {
		return nil, errors.NewError("verify", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}
	if src == nil {
		return nil, errors.NewError("verify", errors.ErrInvalidInput).
			WithMessage("source cannot be nil")
	}

	head, err := v.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if stderrors.As(err, &notFound) {
			return nil, errors.NewError("verify", errors.ErrObjectNotFound).
				WithMessage(bucket + "/" + key)
		}
		return nil, errors.NewError("verify", err)
	}

	remoteETag := aws.ToString(head.ETag)
	remote := strings.Trim(remoteETag, `"`)

	partCount := 1
	// Copy before appending so callers never see their opts slice mutated.
	computeOpts := append(make([]etagtypes.ComputeOption, 0, len(opts)+1), opts...)
	if idx := strings.LastIndex(remote, "-"); idx >= 0 {
		partCount, err = strconv.Atoi(remote[idx+1:])
		if err != nil || partCount < 1 {
			return nil, errors.NewError("verify", errors.ErrInvalidInput).
				WithMessage(fmt.Sprintf("unrecognized remote etag %s", remoteETag))
		}
	} else {
		// No part suffix: the object was not uploaded via multipart, so the
		// local ETag must be the bare part digest.
		computeOpts = append(computeOpts,
			s3etag.WithSinglePartFormat(etagtypes.SinglePartPlain))
	}

	local, err := s3etag.Compute(ctx, src, computeOpts...)
	if err != nil {
		return nil, err
	}

	// Resolve the part size the same way Compute did, so the part count
	// encoded in the remote ETag can be checked against the local plan.
	cfg := etagtypes.ComputeConfig{PartSize: s3etag.DefaultPartSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &etagtypes.VerifyResult{
		Match:          strings.Trim(local, `"`) == remote,
		LocalETag:      local,
		RemoteETag:     remoteETag,
		PartCount:      partCount,
		LocalPartCount: planner.Count(src.Len(), cfg.PartSize),
		RemoteSize:     aws.ToInt64(head.ContentLength),
	}, nil
}

// Ensure is Object plus a hard failure: it returns ErrETagMismatch when
// the local and remote ETags differ. The result is returned alongside the
// error for diagnostics.
func (v *Verifier) Ensure(
	ctx context.Context,
	bucket, key string,
	src s3etag.Source,
	opts ...etagtypes.ComputeOption,
) (*etagtypes.VerifyResult, error) {
	result, err := v.Object(ctx, bucket, key, src, opts...)
	if err != nil {
		return nil, err
	}
	if !result.Match {
		msg := fmt.Sprintf("local %s, remote %s", result.LocalETag, result.RemoteETag)
		if result.LocalPartCount != result.PartCount {
			msg += fmt.Sprintf("; local plan has %d parts but the remote etag encodes %d, part size likely differs from the upload",
				result.LocalPartCount, result.PartCount)
		}
		return result, errors.NewError("verify", errors.ErrETagMismatch).WithMessage(msg)
	}
	return result, nil
}
