package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/extcheck/blobstore"
)

// Client is the subset of the S3 API used by Store.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DownloadConfig configures whole-object downloads.
type DownloadConfig struct {
	// PartSize is the size of each ranged GET.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of parts fetched in parallel.
	// Default: 5 (matches SDK default)
	Concurrency int

	// Threshold is the object size from which whole-object reads use
	// parallel ranged GETs instead of a single streaming GET.
	// Default: 16MB
	Threshold int64
}

// DefaultDownloadConfig returns the default download settings.
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
		Threshold:   16 * 1024 * 1024,
	}
}

type options struct {
	region   string
	download DownloadConfig
}

// Option configures a Store.
type Option func(*options)

// WithRegion sets the AWS region used by New.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithDownloadConfig overrides the whole-object download settings.
func WithDownloadConfig(cfg DownloadConfig) Option {
	return func(o *options) {
		o.download = cfg
	}
}

// Store implements blobstore.Store for S3.
// Names have the form "bucket/key".
type Store struct {
	client     Client
	downloader *manager.Downloader
	cfg        DownloadConfig
}

// New creates a Store using the default AWS credential chain.
func New(ctx context.Context, optFns ...Option) (*Store, error) {
	opts := applyOptions(optFns)

	var loadFns []func(*config.LoadOptions) error
	if opts.region != "" {
		loadFns = append(loadFns, config.WithRegion(opts.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadFns...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	return newStore(s3.NewFromConfig(cfg), opts), nil
}

// NewStore creates a Store on top of an existing client.
func NewStore(client Client, optFns ...Option) *Store {
	return newStore(client, applyOptions(optFns))
}

func applyOptions(optFns []Option) options {
	opts := options{download: DefaultDownloadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

func newStore(client Client, opts options) *Store {
	cfg := opts.download
	return &Store{
		client: client,
		cfg:    cfg,
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			if cfg.PartSize > 0 {
				d.PartSize = cfg.PartSize
			}
			if cfg.Concurrency > 0 {
				d.Concurrency = cfg.Concurrency
			}
		}),
	}
}

// Open stats the object and returns a handle for reading it.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	bucket, key, ok := strings.Cut(name, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: %q", blobstore.ErrInvalidURI, name)
	}

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &s3Blob{
		store:  s,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// s3Blob implements blobstore.Blob
type s3Blob struct {
	store  *Store
	bucket string
	key    string
	size   int64
}

func (b *s3Blob) Close() error {
	return nil
}

func (b *s3Blob) Size() int64 {
	return b.size
}

func (b *s3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), b.size)

	body, err := b.getRange(ctx, off, end)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p[:end-off])
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *s3Blob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off == b.size {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	if off > b.size {
		return nil, io.EOF
	}

	end := min(off+length, b.size)

	if off == 0 && end == b.size && b.size >= b.store.cfg.Threshold {
		return b.download(ctx)
	}

	return b.getRange(ctx, off, end)
}

// getRange fetches bytes [off, end).
func (b *s3Blob) getRange(ctx context.Context, off, end int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := b.store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end-1)),
	})
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// download fetches the whole object with parallel ranged GETs.
func (b *s3Blob) download(ctx context.Context) (io.ReadCloser, error) {
	buf := manager.NewWriteAtBuffer(make([]byte, 0, b.size))

	n, err := b.store.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(buf.Bytes()[:n])), nil
}
