package extcheck

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/hupe1980/extcheck/compare"
	"github.com/hupe1980/extcheck/solution"
)

// Logger wraps slog.Logger with extcheck-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs logfmt text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewConsoleLogger creates a human-readable Logger writing to w.
// Output is colored only when w is a terminal.
func NewConsoleLogger(w io.Writer, level slog.Level) *Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRole adds a role field to the logger.
func (l *Logger) WithRole(role Role) *Logger {
	return &Logger{
		Logger: l.Logger.With("role", role),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogRead logs the result of reading one solution file.
func (l *Logger) LogRead(ctx context.Context, role Role, path string, stats solution.Stats, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"role", role,
			"path", path,
			"error", err,
		)
		return
	}

	l.DebugContext(ctx, "read completed",
		"role", role,
		"path", path,
		"extensions", stats.Extensions,
		"empty", stats.EmptyExtensions,
		"duplicates", stats.Duplicates,
		"avg_size", stats.AverageSize,
		"total_members", stats.TotalMembers,
		"distinct_arguments", stats.DistinctArguments,
		"bytes", stats.Bytes,
		"duration", duration,
	)
}

// LogCompare logs a finished comparison.
func (l *Logger) LogCompare(ctx context.Context, res compare.Result, duration time.Duration) {
	l.DebugContext(ctx, "compare completed",
		"verdict", res.Verdict,
		"total", res.Total,
		"correct", res.Correct,
		"wrong", res.Wrong,
		"missing", res.Missing(),
		"candidates", res.Candidates,
		"unvisited_reference", res.UnvisitedReference,
		"unvisited_candidate", res.UnvisitedCandidate,
		"duration", duration,
	)
}

// LogMismatch logs one extension found on only one side.
func (l *Logger) LogMismatch(ctx context.Context, kind string, tokens []string) {
	l.DebugContext(ctx, "extension mismatch",
		"kind", kind,
		"size", len(tokens),
		"arguments", tokens,
	)
}
