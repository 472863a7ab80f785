package solution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/extcheck/extension"
	"github.com/hupe1980/extcheck/resource"
)

// Stats summarizes a collection. Bytes is a coarse storage estimate used for
// diagnostics only.
type Stats struct {
	Extensions        int
	EmptyExtensions   int
	Duplicates        int
	TotalMembers      int
	DistinctArguments int
	AverageSize       float64
	Bytes             int64
}

// Collection is the sorted sequence of extensions read from one solution.
type Collection struct {
	exts     []*extension.Extension
	args     *roaring.Bitmap
	members  int
	bytes    int64
	reserved int64
	budget   *resource.Controller
	multi    bool
}

// Extensions returns the sorted extensions. The slice must not be modified.
func (c *Collection) Extensions() []*extension.Extension {
	return c.exts
}

// Len returns the number of extensions.
func (c *Collection) Len() int {
	return len(c.exts)
}

// Multi reports whether the source was a list of extensions rather than a
// single bare extension.
func (c *Collection) Multi() bool {
	return c.multi
}

// Arguments returns the set of argument ids used by any extension.
func (c *Collection) Arguments() *roaring.Bitmap {
	return c.args
}

// Stats computes summary statistics.
func (c *Collection) Stats() Stats {
	s := Stats{
		Extensions:        len(c.exts),
		TotalMembers:      c.members,
		DistinctArguments: int(c.args.GetCardinality()),
		Bytes:             c.bytes,
	}
	for i, e := range c.exts {
		if e.IsEmpty() {
			s.EmptyExtensions++
		}
		if i > 0 && c.exts[i-1].Equal(e) {
			s.Duplicates++
		}
	}
	if s.Extensions > 0 {
		s.AverageSize = float64(c.members) / float64(s.Extensions)
	}
	return s
}

// Release returns the collection's memory reservation to its budget.
func (c *Collection) Release() {
	if c.reserved > 0 {
		c.budget.ReleaseMemory(c.reserved)
		c.reserved = 0
	}
}

type builderOptions struct {
	budget        *resource.Controller
	progress      func(n int)
	progressEvery int
	sizeHint      int
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderOptions)

// WithBudget charges every extension's estimated size against rc.
func WithBudget(rc *resource.Controller) BuilderOption {
	return func(o *builderOptions) {
		o.budget = rc
	}
}

// WithProgress calls fn with the running extension count every n extensions.
func WithProgress(n int, fn func(count int)) BuilderOption {
	return func(o *builderOptions) {
		if n > 0 {
			o.progressEvery = n
			o.progress = fn
		}
	}
}

// WithSizeHint preallocates room for n extensions.
func WithSizeHint(n int) BuilderOption {
	return func(o *builderOptions) {
		if n > 0 {
			o.sizeHint = n
		}
	}
}

// Builder accumulates the records of a Reader into a sorted Collection.
type Builder struct {
	enc  *extension.Encoder
	opts builderOptions
}

// NewBuilder returns a Builder encoding with enc.
func NewBuilder(enc *extension.Encoder, optFns ...BuilderOption) *Builder {
	var opts builderOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{enc: enc, opts: opts}
}

// Build drains r and returns the sorted collection. Any malformed record,
// capacity error or budget overrun aborts the build.
func (b *Builder) Build(ctx context.Context, r *Reader) (*Collection, error) {
	c := &Collection{
		exts:   make([]*extension.Extension, 0, b.opts.sizeHint),
		args:   roaring.New(),
		budget: b.opts.budget,
	}

	for {
		if err := ctx.Err(); err != nil {
			c.Release()
			return nil, err
		}

		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.Release()
			return nil, err
		}

		ext, err := b.enc.Encode(rec)
		if err != nil {
			c.Release()
			return nil, fmt.Errorf("extension %d: %w", len(c.exts)+1, err)
		}

		size := int64(ext.SizeBytes())
		if err := c.budget.AcquireMemory(size); err != nil {
			c.Release()
			return nil, fmt.Errorf("extension %d: %w", len(c.exts)+1, err)
		}
		c.reserved += size

		c.add(ext, size)

		if b.opts.progress != nil && len(c.exts)%b.opts.progressEvery == 0 {
			b.opts.progress(len(c.exts))
		}
	}

	c.multi = r.Multi()
	slices.SortFunc(c.exts, (*extension.Extension).Compare)

	return c, nil
}

func (c *Collection) add(ext *extension.Extension, size int64) {
	for _, id := range ext.Members() {
		c.args.Add(uint32(id))
	}
	c.members += ext.Len()
	c.bytes += size
	c.exts = append(c.exts, ext)
}
