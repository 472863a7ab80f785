package extcheck

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/extcheck/compare"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRead is called after each solution file has been read.
	// extensions is the number of extensions parsed, bytes the size of the
	// source, err is nil if successful.
	RecordRead(role Role, extensions int, bytes int64, duration time.Duration, err error)

	// RecordCompare is called after each comparison.
	RecordCompare(verdict compare.Verdict, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRead(Role, int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordCompare(compare.Verdict, time.Duration)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReadCount         atomic.Int64
	ReadErrors        atomic.Int64
	ReadExtensions    atomic.Int64
	ReadBytes         atomic.Int64
	ReadTotalNanos    atomic.Int64
	CompareCount      atomic.Int64
	CompareOK         atomic.Int64
	CompareWrong      atomic.Int64
	CompareTotalNanos atomic.Int64
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(_ Role, extensions int, bytes int64, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadExtensions.Add(int64(extensions))
	b.ReadBytes.Add(bytes)
}

// RecordCompare implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompare(verdict compare.Verdict, duration time.Duration) {
	b.CompareCount.Add(1)
	b.CompareTotalNanos.Add(duration.Nanoseconds())
	if verdict == compare.VerdictOK {
		b.CompareOK.Add(1)
	} else {
		b.CompareWrong.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadCount:       b.ReadCount.Load(),
		ReadErrors:      b.ReadErrors.Load(),
		ReadExtensions:  b.ReadExtensions.Load(),
		ReadBytes:       b.ReadBytes.Load(),
		ReadAvgNanos:    avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		CompareCount:    b.CompareCount.Load(),
		CompareOK:       b.CompareOK.Load(),
		CompareWrong:    b.CompareWrong.Load(),
		CompareAvgNanos: avg(b.CompareTotalNanos.Load(), b.CompareCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReadCount       int64
	ReadErrors      int64
	ReadExtensions  int64
	ReadBytes       int64
	ReadAvgNanos    int64
	CompareCount    int64
	CompareOK       int64
	CompareWrong    int64
	CompareAvgNanos int64
}
