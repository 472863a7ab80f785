// Package resource bounds the memory and read throughput of a comparison run.
//
// The Controller provides two independent limits:
//
//   - Memory: a fail-fast budget for the estimated size of extension
//     collections. Reservations that do not fit return ErrMemoryLimitExceeded.
//   - IO: a token bucket applied to solution readers.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   512 << 20,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(n); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(n)
//
//	r := resource.NewRateLimitedReader(ctx, file, rc)
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
