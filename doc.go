// Package extcheck checks argumentation-framework solutions for correctness.
//
// A solver emits a set of extensions, each a set of argument names. Checker
// reads a reference solution and a candidate solution, encodes every
// extension as a bit-vector over arguments interned in order of appearance,
// sorts both sides and merges them to count correct and wrong extensions.
//
// # Quick Start
//
//	checker := extcheck.New(extcheck.WithLogger(extcheck.NewTextLogger(slog.LevelDebug)))
//
//	out, err := checker.Check(ctx, "reference.txt", "candidate.txt")
//	if err != nil {
//	    os.Exit(extcheck.ExitCode(err))
//	}
//	_ = report.Write(os.Stdout, out.Result)
//
// # Sources
//
// Locations are plain paths, file:// URIs, s3://bucket/key or
// minio://bucket/key. Remote stores are registered with WithStore. gzip,
// zstd and lz4 compressed solutions are decompressed transparently.
//
// # Errors
//
// Failures are returned as *FileError and classify with errors.Is:
//
//   - ErrIO: a source is missing or unreadable
//   - ErrParse: a solution violates the bracket structure
//   - ErrCapacity: the argument space or the memory budget is exhausted
//   - ErrUsage: a location cannot be resolved
//
// ExitCode maps them to the exit codes of the extcheck command.
package extcheck
