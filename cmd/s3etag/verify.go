package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	s3etag "github.com/mayur19/s3-etag-generator"
	"github.com/mayur19/s3-etag-generator/etagtypes"
	"github.com/mayur19/s3-etag-generator/verify"
)

var (
	verifyBucket      string
	verifyKey         string
	verifyRegion      string
	verifyEndpoint    string
	verifyPathStyle   bool
	verifyPartSizeMB  int
	verifyConcurrency int
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a local file against an uploaded S3 object",
	Long: `Verify computes the multipart ETag of the local file and compares it
with the ETag of the stored object, fetched with a HeadObject request. The
object body is never downloaded.

Exits non-zero when the ETags differ.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyBucket, "bucket", "", "S3 bucket holding the object (required)")
	verifyCmd.Flags().StringVar(&verifyKey, "key", "", "S3 object key (required)")
	verifyCmd.Flags().StringVar(&verifyRegion, "region", "", "AWS region of the bucket")
	verifyCmd.Flags().StringVar(&verifyEndpoint, "endpoint", "", "Custom S3 endpoint URL")
	verifyCmd.Flags().BoolVar(&verifyPathStyle, "path-style", false, "Use path-style addressing")
	verifyCmd.Flags().IntVar(&verifyPartSizeMB, "part-size-mb", 8,
		"Part size in MB, matching the part size used for the upload")
	verifyCmd.Flags().IntVar(&verifyConcurrency, "concurrency", s3etag.DefaultConcurrency,
		"Maximum number of parts hashed at once")
	verifyCmd.MarkFlagRequired("bucket")
	verifyCmd.MarkFlagRequired("key")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	verifierOpts := []verify.Option{}
	if verifyRegion != "" {
		verifierOpts = append(verifierOpts, verify.WithRegion(verifyRegion))
	}
	if verifyEndpoint != "" {
		verifierOpts = append(verifierOpts, verify.WithEndpoint(verifyEndpoint))
	}
	if verifyPathStyle {
		verifierOpts = append(verifierOpts, verify.WithForcePathStyle(true))
	}

	verifier, err := verify.New(ctx, verifierOpts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize verifier")
		return err
	}

	src, err := s3etag.NewFileSource(billy.NewOSFS("/"), path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to open file")
		return err
	}
	defer src.Close()

	opts := []etagtypes.ComputeOption{
		s3etag.WithPartSizeMB(verifyPartSizeMB),
		s3etag.WithConcurrency(verifyConcurrency),
	}

	result, err := verifier.Object(ctx, verifyBucket, verifyKey, src, opts...)
	if err != nil {
		log.Error().Err(err).
			Str("bucket", verifyBucket).
			Str("key", verifyKey).
			Msg("Verification failed")
		return err
	}

	if !result.Match {
		log.Error().
			Str("local_etag", result.LocalETag).
			Str("remote_etag", result.RemoteETag).
			Int("local_parts", result.LocalPartCount).
			Int("remote_parts", result.PartCount).
			Str("remote_size", humanize.IBytes(uint64(result.RemoteSize))).
			Msg("ETag mismatch")
		return fmt.Errorf("etag mismatch: local %s, remote %s", result.LocalETag, result.RemoteETag)
	}

	log.Info().
		Str("etag", result.RemoteETag).
		Int("parts", result.PartCount).
		Str("remote_size", humanize.IBytes(uint64(result.RemoteSize))).
		Msg("ETag verified")
	fmt.Fprintln(cmd.OutOrStdout(), result.LocalETag)
	return nil
}
