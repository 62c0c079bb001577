// Package verify provides verifier initialization and configuration.
package verify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mayur19/s3-etag-generator/errors"
)

// HeadObjectAPI defines the S3 operation the verifier depends on.
// This interface allows for mocking in tests.
type HeadObjectAPI interface {
	// HeadObject retrieves metadata about an object without retrieving the
	// object itself
	HeadObject(
		ctx context.Context,
		params *s3.HeadObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.HeadObjectOutput, error)
}

// Config holds configuration for constructing a Verifier.
type Config struct {
	// Region is the AWS region; empty uses the credential chain default
	Region string

	// Endpoint is a custom S3 endpoint URL, useful for S3-compatible
	// services or local testing
	Endpoint string

	// ForcePathStyle forces path-style URLs instead of virtual-hosted style
	ForcePathStyle bool

	// CustomAWSConfig overrides the default configuration loading behavior
	CustomAWSConfig *aws.Config
}

// Option configures the verifier's AWS client.
type Option func(*Config)

// WithRegion sets the AWS region used to reach the bucket.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of
// virtual-hosted style. This is required for S3-compatible services that
// don't support virtual hosting.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *Config) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(c *Config) {
		c.CustomAWSConfig = cfg
	}
}

// New creates a Verifier backed by a real S3 client.
// Credentials are loaded using the default AWS credential chain unless a
// custom configuration is provided.
func New(ctx context.Context, opts ...Option) (*Verifier, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var awsCfg aws.Config
	var err error
	if cfg.CustomAWSConfig != nil {
		awsCfg = *cfg.CustomAWSConfig
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.NewError("verifier initialization", err)
		}
	}

	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return &Verifier{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
	}, nil
}
