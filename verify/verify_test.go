package verify

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3etag "github.com/mayur19/s3-etag-generator"
	"github.com/mayur19/s3-etag-generator/errors"
	"github.com/mayur19/s3-etag-generator/etagtypes"
)

// mockHeadClient is a mock implementation for testing
type mockHeadClient struct {
	headObjectFunc func(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

func (m *mockHeadClient) HeadObject(
	ctx context.Context,
	params *s3.HeadObjectInput,
	optFns ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	return m.headObjectFunc(ctx, params, optFns...)
}

func headReturning(etag string, size int64) *mockHeadClient {
	return &mockHeadClient{
		headObjectFunc: func(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			return &s3.HeadObjectOutput{
				ETag:          aws.String(etag),
				ContentLength: aws.Int64(size),
			}, nil
		},
	}
}

func testData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*31 + 7)
	}
	return data
}

func TestVerifier_Object_MultipartMatch(t *testing.T) {
	data := testData(3000)
	opts := []etagtypes.ComputeOption{s3etag.WithPartSize(1024)}

	remote, err := s3etag.Compute(context.Background(), s3etag.NewBytesSource(data), opts...)
	require.NoError(t, err)

	verifier := NewWithClient(headReturning(remote, int64(len(data))))
	result, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource(data), opts...)
	require.NoError(t, err)

	assert.True(t, result.Match)
	assert.Equal(t, remote, result.LocalETag)
	assert.Equal(t, remote, result.RemoteETag)
	assert.Equal(t, 3, result.PartCount)
	assert.Equal(t, 3, result.LocalPartCount)
	assert.Equal(t, int64(len(data)), result.RemoteSize)
}

func TestVerifier_Object_SinglePartRemote(t *testing.T) {
	data := []byte("hello")

	// An object uploaded without multipart: the remote ETag is the bare MD5.
	verifier := NewWithClient(headReturning(`"5d41402abc4b2a76b9719d911017c592"`, 5))
	result, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource(data))
	require.NoError(t, err)

	assert.True(t, result.Match, "verifier must fall back to the plain single-part format")
	assert.Equal(t, 1, result.PartCount)
	assert.Equal(t, 1, result.LocalPartCount)
}

func TestVerifier_Object_PartCountMismatch(t *testing.T) {
	// The remote object was uploaded in 3 parts, but the local part size
	// splits the source into 2. The mismatch must be visible in the part
	// counts, not only as unequal ETags.
	data := testData(3000)
	opts := []etagtypes.ComputeOption{s3etag.WithPartSize(2048)}

	verifier := NewWithClient(headReturning(`"00000000000000000000000000000000-3"`, int64(len(data))))
	result, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource(data), opts...)
	require.NoError(t, err)

	assert.False(t, result.Match)
	assert.Equal(t, 3, result.PartCount)
	assert.Equal(t, 2, result.LocalPartCount)

	_, err = verifier.Ensure(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource(data), opts...)
	assert.True(t, errors.IsETagMismatch(err))
	assert.ErrorContains(t, err, "part size likely differs")
}

func TestVerifier_Object_DoesNotMutateCallerOptions(t *testing.T) {
	applied := false
	full := make([]etagtypes.ComputeOption, 2)
	full[0] = s3etag.WithPartSize(1024)
	full[1] = func(*etagtypes.ComputeConfig) { applied = true }

	// Pass a sub-slice with spare capacity; the single-part fallback
	// appends an option and must not clobber the caller's backing array.
	verifier := NewWithClient(headReturning(`"5d41402abc4b2a76b9719d911017c592"`, 5))
	_, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource([]byte("hello")), full[:1]...)
	require.NoError(t, err)

	full[1](&etagtypes.ComputeConfig{})
	assert.True(t, applied, "caller's options past the passed length must stay intact")
}

func TestVerifier_Object_Mismatch(t *testing.T) {
	data := testData(3000)
	opts := []etagtypes.ComputeOption{s3etag.WithPartSize(1024)}

	verifier := NewWithClient(headReturning(`"00000000000000000000000000000000-3"`, int64(len(data))))
	result, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource(data), opts...)
	require.NoError(t, err)

	assert.False(t, result.Match)
	assert.NotEqual(t, result.LocalETag, result.RemoteETag)
}

func TestVerifier_Ensure(t *testing.T) {
	data := testData(2048)
	opts := []etagtypes.ComputeOption{s3etag.WithPartSize(1024)}

	remote, err := s3etag.Compute(context.Background(), s3etag.NewBytesSource(data), opts...)
	require.NoError(t, err)

	t.Run("match", func(t *testing.T) {
		verifier := NewWithClient(headReturning(remote, int64(len(data))))
		result, err := verifier.Ensure(context.Background(), "test-bucket", "test-key",
			s3etag.NewBytesSource(data), opts...)
		require.NoError(t, err)
		assert.True(t, result.Match)
	})

	t.Run("mismatch", func(t *testing.T) {
		verifier := NewWithClient(headReturning(`"ffffffffffffffffffffffffffffffff-2"`, int64(len(data))))
		result, err := verifier.Ensure(context.Background(), "test-bucket", "test-key",
			s3etag.NewBytesSource(data), opts...)
		assert.True(t, errors.IsETagMismatch(err))
		require.NotNil(t, result)
		assert.False(t, result.Match)
	})
}

func TestVerifier_Object_NotFound(t *testing.T) {
	verifier := NewWithClient(&mockHeadClient{
		headObjectFunc: func(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			return nil, &types.NotFound{}
		},
	})

	result, err := verifier.Object(context.Background(), "test-bucket", "missing-key",
		s3etag.NewBytesSource([]byte("data")))
	assert.Nil(t, result)
	assert.True(t, errors.IsObjectNotFound(err))
}

func TestVerifier_Object_HeadError(t *testing.T) {
	boom := stderrors.New("throttled")
	verifier := NewWithClient(&mockHeadClient{
		headObjectFunc: func(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			return nil, boom
		},
	})

	result, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource([]byte("data")))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestVerifier_Object_InvalidInput(t *testing.T) {
	verifier := NewWithClient(headReturning(`"abc"`, 0))

	tests := []struct {
		name   string
		bucket string
		key    string
		src    s3etag.Source
	}{
		{name: "empty bucket", bucket: "", key: "k", src: s3etag.NewBytesSource(nil)},
		{name: "empty key", bucket: "b", key: "", src: s3etag.NewBytesSource(nil)},
		{name: "nil source", bucket: "b", key: "k", src: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := verifier.Object(context.Background(), tt.bucket, tt.key, tt.src)
			assert.Nil(t, result)
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}

func TestVerifier_Object_UnparsableRemoteSuffix(t *testing.T) {
	verifier := NewWithClient(headReturning(`"deadbeef-notanumber"`, 10))

	result, err := verifier.Object(context.Background(), "test-bucket", "test-key",
		s3etag.NewBytesSource([]byte("data")))
	assert.Nil(t, result)
	assert.True(t, errors.IsInvalidInput(err))
}
