package extcheck

import (
	"github.com/hupe1980/extcheck/blobstore"
	"github.com/hupe1980/extcheck/intern"
	"github.com/hupe1980/extcheck/resource"
)

// DefaultMismatchLimit is the number of mismatching extensions logged per side.
const DefaultMismatchLimit = 10

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	maxArguments     uint64
	maxRecordBytes   int
	resource         *resource.Controller
	stores           map[string]blobstore.Store
	localRoot        string
	mismatchLimit    int
}

// Option configures a Checker.
type Option func(*options)

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithMaxArguments limits the number of distinct argument tokens per run.
// Zero selects intern.DefaultMaxArguments.
func WithMaxArguments(n uint64) Option {
	return func(o *options) {
		o.maxArguments = n
	}
}

// WithMaxRecordBytes limits the size of a single extension group in bytes.
// Zero disables the limit.
func WithMaxRecordBytes(n int) Option {
	return func(o *options) {
		o.maxRecordBytes = n
	}
}

// WithResourceController sets the memory budget and IO limiter.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}

// WithStore registers the store used for locations with the given scheme
// (blobstore.SchemeFile, blobstore.SchemeS3, blobstore.SchemeMinIO).
func WithStore(scheme string, store blobstore.Store) Option {
	return func(o *options) {
		o.stores[scheme] = store
	}
}

// WithLocalRoot resolves relative local paths against dir.
func WithLocalRoot(dir string) Option {
	return func(o *options) {
		o.localRoot = dir
	}
}

// WithMismatchLimit sets how many mismatching extensions per side are
// decoded and logged at debug level. Negative values disable the limit.
func WithMismatchLimit(n int) Option {
	return func(o *options) {
		o.mismatchLimit = n
	}
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		maxArguments:     intern.DefaultMaxArguments,
		stores:           make(map[string]blobstore.Store),
		mismatchLimit:    DefaultMismatchLimit,
	}
}
