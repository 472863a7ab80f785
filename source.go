package extcheck

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/extcheck/blobstore"
	"github.com/hupe1980/extcheck/internal/compress"
	"github.com/hupe1980/extcheck/resource"
)

// source is an opened solution stream.
type source struct {
	io.Reader

	// Size is the stored (possibly compressed) size in bytes.
	Size  int64
	Codec compress.Codec

	closers []io.Closer
}

func (s *source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *Checker) store(scheme string) (blobstore.Store, error) {
	if st, ok := c.opts.stores[scheme]; ok {
		return st, nil
	}
	if scheme == blobstore.SchemeFile {
		return blobstore.NewLocalStore(c.opts.localRoot), nil
	}
	return nil, fmt.Errorf("%w: no store configured for %s://", blobstore.ErrUnsupportedScheme, scheme)
}

// open resolves loc and returns its decompressed, rate-limited contents.
func (c *Checker) open(ctx context.Context, loc blobstore.Location) (*source, error) {
	st, err := c.store(loc.Scheme)
	if err != nil {
		return nil, err
	}

	blob, err := st.Open(ctx, loc.Name)
	if err != nil {
		return nil, err
	}

	raw, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		_ = blob.Close()
		return nil, err
	}

	var r io.Reader = raw
	if c.opts.resource != nil {
		r = resource.NewRateLimitedReader(ctx, raw, c.opts.resource)
	}

	dec, codec, err := compress.NewReader(r)
	if err != nil {
		_ = raw.Close()
		_ = blob.Close()
		return nil, err
	}

	return &source{
		Reader:  dec,
		Size:    blob.Size(),
		Codec:   codec,
		closers: []io.Closer{blob, raw, dec},
	}, nil
}
