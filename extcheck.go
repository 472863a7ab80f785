package extcheck

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/extcheck/blobstore"
	"github.com/hupe1980/extcheck/compare"
	"github.com/hupe1980/extcheck/extension"
	"github.com/hupe1980/extcheck/intern"
	"github.com/hupe1980/extcheck/internal/compress"
	"github.com/hupe1980/extcheck/solution"
)

// Outcome is the result of one check together with its diagnostics.
type Outcome struct {
	compare.Result

	Reference solution.Stats
	Candidate solution.Stats

	// UnknownArguments counts argument tokens that occur only in the candidate.
	UnknownArguments uint64
	// UnusedArguments counts argument tokens that occur only in the reference.
	UnusedArguments uint64

	ReadDuration    time.Duration
	CompareDuration time.Duration
}

// Checker compares candidate solutions against reference solutions.
//
// A Checker is safe for concurrent use; every call to Check runs with its
// own argument interner.
type Checker struct {
	opts options
}

// New creates a Checker.
func New(optFns ...Option) *Checker {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = NoopLogger()
	}
	if opts.metricsCollector == nil {
		opts.metricsCollector = NoopMetricsCollector{}
	}
	return &Checker{opts: opts}
}

// Check reads the reference and then the candidate solution at the given
// locations and compares them. Locations are plain paths or URIs understood
// by blobstore.ParseURI.
//
// Failures are returned as *FileError naming the offending file; use
// errors.Is with ErrIO, ErrParse, ErrCapacity or ErrUsage to classify them.
func (c *Checker) Check(ctx context.Context, reference, candidate string) (*Outcome, error) {
	run := c.newRun()
	defer run.release()

	start := time.Now()

	ref, err := run.loadPath(ctx, RoleReference, reference)
	if err != nil {
		return nil, err
	}

	cand, err := run.loadPath(ctx, RoleCandidate, candidate)
	if err != nil {
		return nil, err
	}

	return run.finish(ctx, ref, cand, time.Since(start)), nil
}

// CheckReaders compares two uncompressed solution streams.
func (c *Checker) CheckReaders(ctx context.Context, reference, candidate io.Reader) (*Outcome, error) {
	run := c.newRun()
	defer run.release()

	start := time.Now()

	ref, err := run.load(ctx, RoleReference, "-", reference, 0)
	if err != nil {
		return nil, err
	}

	cand, err := run.load(ctx, RoleCandidate, "-", candidate, 0)
	if err != nil {
		return nil, err
	}

	return run.finish(ctx, ref, cand, time.Since(start)), nil
}

// run holds the state of one comparison.
type run struct {
	*Checker
	interner    *intern.Interner
	builder     *solution.Builder
	collections []*solution.Collection
}

func (c *Checker) newRun() *run {
	in := intern.New(intern.WithMaxArguments(c.opts.maxArguments))
	return &run{
		Checker:  c,
		interner: in,
		builder: solution.NewBuilder(
			extension.NewEncoder(in),
			solution.WithBudget(c.opts.resource),
		),
	}
}

func (r *run) release() {
	for _, coll := range r.collections {
		coll.Release()
	}
}

func (r *run) loadPath(ctx context.Context, role Role, path string) (*solution.Collection, error) {
	loc, err := blobstore.ParseURI(path)
	if err != nil {
		return nil, fileError(role, path, err)
	}

	src, err := r.open(ctx, loc)
	if err != nil {
		r.opts.logger.LogRead(ctx, role, path, solution.Stats{}, 0, err)
		r.opts.metricsCollector.RecordRead(role, 0, 0, 0, err)
		return nil, fileError(role, path, err)
	}
	defer src.Close()

	if src.Codec != compress.None {
		r.opts.logger.DebugContext(ctx, "decompressing source", "role", role, "path", path, "codec", src.Codec.String())
	}

	return r.load(ctx, role, path, src, src.Size)
}

func (r *run) load(ctx context.Context, role Role, path string, src io.Reader, size int64) (*solution.Collection, error) {
	start := time.Now()

	reader := solution.NewReader(src, solution.WithMaxRecordBytes(r.opts.maxRecordBytes))
	coll, err := r.builder.Build(ctx, reader)

	duration := time.Since(start)
	if err != nil {
		r.opts.logger.LogRead(ctx, role, path, solution.Stats{}, duration, err)
		r.opts.metricsCollector.RecordRead(role, 0, size, duration, err)
		return nil, fileError(role, path, err)
	}

	r.collections = append(r.collections, coll)

	stats := coll.Stats()
	r.opts.logger.LogRead(ctx, role, path, stats, duration, nil)
	r.opts.metricsCollector.RecordRead(role, stats.Extensions, size, duration, nil)

	return coll, nil
}

func (r *run) finish(ctx context.Context, ref, cand *solution.Collection, readDuration time.Duration) *Outcome {
	start := time.Now()
	res := compare.Collections(ref, cand)
	duration := time.Since(start)

	out := &Outcome{
		Result:           res,
		Reference:        ref.Stats(),
		Candidate:        cand.Stats(),
		UnknownArguments: roaring.AndNot(cand.Arguments(), ref.Arguments()).GetCardinality(),
		UnusedArguments:  roaring.AndNot(ref.Arguments(), cand.Arguments()).GetCardinality(),
		ReadDuration:     readDuration,
		CompareDuration:  duration,
	}

	r.opts.logger.LogCompare(ctx, res, duration)
	r.opts.metricsCollector.RecordCompare(res.Verdict, duration)

	if r.opts.logger.Enabled(ctx, slog.LevelDebug) {
		r.opts.logger.DebugContext(ctx, "argument overlap",
			"unknown", out.UnknownArguments,
			"unused", out.UnusedArguments,
		)
		r.logMismatches(ctx, "missing", ref.Extensions(), res.MissingIdx)
		r.logMismatches(ctx, "surplus", cand.Extensions(), res.SurplusIdx)
	}

	return out
}

func (r *run) logMismatches(ctx context.Context, kind string, exts []*extension.Extension, idx []int) {
	for n, i := range idx {
		if r.opts.mismatchLimit >= 0 && n >= r.opts.mismatchLimit {
			r.opts.logger.DebugContext(ctx, "mismatch list truncated", "kind", kind, "omitted", len(idx)-n)
			return
		}

		tokens, err := exts[i].Decode(r.interner)
		if err != nil {
			r.opts.logger.WarnContext(ctx, "decode failed", "kind", kind, "error", err)
			continue
		}
		r.opts.logger.LogMismatch(ctx, kind, tokens)
	}
}
