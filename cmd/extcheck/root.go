package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/extcheck"
	"github.com/hupe1980/extcheck/blobstore"
	"github.com/hupe1980/extcheck/blobstore/minio"
	"github.com/hupe1980/extcheck/blobstore/s3"
	"github.com/hupe1980/extcheck/intern"
	"github.com/hupe1980/extcheck/report"
	"github.com/hupe1980/extcheck/resource"
)

type config struct {
	maxArgs        uint64
	maxRecordBytes int
	memoryLimit    int64
	ioLimit        int64
	verbose        bool
	logFormat      string

	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioSecure    bool
	s3Region       string
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		ran      bool
		checkErr error
	)

	cmd := newRootCmd(stdout, stderr, func(err error) {
		ran = true
		checkErr = err
	})
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil && !ran {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		_ = cmd.Usage()
		return extcheck.ExitUsage
	}

	return extcheck.ExitCode(checkErr)
}

func newRootCmd(stdout, stderr io.Writer, done func(error)) *cobra.Command {
	cfg := config{}

	cmd := &cobra.Command{
		Use:   "extcheck [flags] <reference> <candidate>",
		Short: "Check a candidate solution against a reference solution",
		Long: fmt.Sprintf(`Compares the extensions of a candidate solution with those of a reference
solution and prints

  OK|WRONG
  <total> total
  <correct> correct
  <wrong> wrong

Solutions are a bracketed list of argument names, [a1,a2], or a list of
such lists, [[a1,a2],[a3]]. Sources may be local paths, file://, s3:// or
minio:// URIs, optionally gzip, zstd or lz4 compressed.

Exit codes: 0 compared, 1 usage, 2 i/o, 3 parse, 4 capacity.
Maximum number of arguments: %d`, intern.DefaultMaxArguments),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := check(cmd.Context(), &cfg, args[0], args[1], stdout, stderr)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			done(err)
			return err
		},
	}

	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.Uint64Var(&cfg.maxArgs, "max-args", intern.DefaultMaxArguments, "maximum number of distinct arguments")
	flags.IntVar(&cfg.maxRecordBytes, "max-record-bytes", 0, "maximum size of one extension in bytes (0 = unlimited)")
	flags.Int64Var(&cfg.memoryLimit, "memory-limit", 0, "memory budget for extension collections in bytes (0 = unlimited)")
	flags.Int64Var(&cfg.ioLimit, "io-limit", 0, "read throughput limit in bytes per second (0 = unlimited)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&cfg.minioEndpoint, "minio-endpoint", "", "MinIO endpoint (host:port) for minio:// sources")
	flags.StringVar(&cfg.minioAccessKey, "minio-access-key", "", "MinIO access key")
	flags.StringVar(&cfg.minioSecretKey, "minio-secret-key", "", "MinIO secret key")
	flags.BoolVar(&cfg.minioSecure, "minio-secure", true, "use HTTPS for MinIO")
	flags.StringVar(&cfg.s3Region, "s3-region", "", "AWS region for s3:// sources")

	return cmd
}

func check(ctx context.Context, cfg *config, reference, candidate string, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	opts := []extcheck.Option{
		extcheck.WithLogger(logger),
		extcheck.WithMaxArguments(cfg.maxArgs),
		extcheck.WithMaxRecordBytes(cfg.maxRecordBytes),
	}

	if cfg.memoryLimit > 0 || cfg.ioLimit > 0 {
		opts = append(opts, extcheck.WithResourceController(resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.memoryLimit,
			IOLimitBytesPerSec: cfg.ioLimit,
		})))
	}

	storeOpts, err := remoteStores(ctx, cfg, reference, candidate)
	if err != nil {
		return err
	}
	opts = append(opts, storeOpts...)

	out, err := extcheck.New(opts...).Check(ctx, reference, candidate)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "check completed",
		"read_duration", out.ReadDuration,
		"compare_duration", out.CompareDuration,
	)

	if err := report.Write(stdout, out.Result); err != nil {
		return fmt.Errorf("%w: write report: %w", extcheck.ErrIO, err)
	}

	return nil
}

// newLogger returns the diagnostics logger. Without --verbose, failures are
// reported only through the returned error.
func newLogger(cfg *config, stderr io.Writer) (*extcheck.Logger, error) {
	switch cfg.logFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", extcheck.ErrUsage, cfg.logFormat)
	}

	if !cfg.verbose {
		return extcheck.NoopLogger(), nil
	}

	if cfg.logFormat == "json" {
		return extcheck.NewLogger(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
	}
	return extcheck.NewConsoleLogger(stderr, slog.LevelDebug), nil
}

// remoteStores creates the object stores needed by the given locations.
// Unparseable locations are left to the checker to report.
func remoteStores(ctx context.Context, cfg *config, locations ...string) ([]extcheck.Option, error) {
	schemes := make(map[string]bool)
	for _, l := range locations {
		if loc, err := blobstore.ParseURI(l); err == nil {
			schemes[loc.Scheme] = true
		}
	}

	var opts []extcheck.Option

	if schemes[blobstore.SchemeS3] {
		var s3Opts []s3.Option
		if cfg.s3Region != "" {
			s3Opts = append(s3Opts, s3.WithRegion(cfg.s3Region))
		}
		store, err := s3.New(ctx, s3Opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", extcheck.ErrIO, err)
		}
		opts = append(opts, extcheck.WithStore(blobstore.SchemeS3, store))
	}

	if schemes[blobstore.SchemeMinIO] {
		if cfg.minioEndpoint == "" {
			return nil, fmt.Errorf("%w: minio:// sources require --minio-endpoint", extcheck.ErrUsage)
		}
		store, err := minio.New(cfg.minioEndpoint,
			minio.WithCredentials(cfg.minioAccessKey, cfg.minioSecretKey),
			minio.WithSecure(cfg.minioSecure),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", extcheck.ErrUsage, err)
		}
		opts = append(opts, extcheck.WithStore(blobstore.SchemeMinIO, store))
	}

	return opts, nil
}
