package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	s3etag "github.com/mayur19/s3-etag-generator"
	"github.com/mayur19/s3-etag-generator/etagtypes"
)

var (
	computePartSizeMB      int
	computeConcurrency     int
	computeSinglePartPlain bool
)

var computeCmd = &cobra.Command{
	Use:   "compute <file>",
	Short: "Compute the multipart ETag of a local file",
	Long: `Compute splits the file into parts of the configured size, hashes the
parts concurrently, and prints the combined ETag to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().IntVar(&computePartSizeMB, "part-size-mb", 8,
		"Part size in MB, matching the part size used for the upload")
	computeCmd.Flags().IntVar(&computeConcurrency, "concurrency", s3etag.DefaultConcurrency,
		"Maximum number of parts hashed at once")
	computeCmd.Flags().BoolVar(&computeSinglePartPlain, "single-part-plain", false,
		"Render single-part ETags the way S3 does for non-multipart uploads")

	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := computeOptions()

	start := time.Now()
	etag, err := s3etag.ComputeFile(cmd.Context(), path, opts...)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to compute ETag")
		return err
	}

	log.Debug().
		Str("file", path).
		Str("part_size", humanize.IBytes(uint64(computePartSizeMB)<<20)).
		Int("concurrency", computeConcurrency).
		Dur("elapsed", time.Since(start)).
		Msg("Computed ETag")

	fmt.Fprintln(cmd.OutOrStdout(), etag)
	return nil
}

func computeOptions() []etagtypes.ComputeOption {
	opts := []etagtypes.ComputeOption{
		s3etag.WithPartSizeMB(computePartSizeMB),
		s3etag.WithConcurrency(computeConcurrency),
	}
	if computeSinglePartPlain {
		opts = append(opts, s3etag.WithSinglePartFormat(etagtypes.SinglePartPlain))
	}
	return opts
}
