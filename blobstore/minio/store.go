package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/extcheck/blobstore"
)

type options struct {
	accessKey string
	secretKey string
	secure    bool
	region    string
}

// Option configures New.
type Option func(*options)

// WithCredentials sets static access and secret keys.
func WithCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithSecure enables HTTPS.
func WithSecure(secure bool) Option {
	return func(o *options) {
		o.secure = secure
	}
}

// WithRegion sets the bucket region.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// Store implements blobstore.Store for MinIO and S3-compatible storage.
// Names have the form "bucket/key".
type Store struct {
	client *minio.Client
}

// New connects to endpoint ("host:port").
func New(endpoint string, optFns ...Option) (*Store, error) {
	opts := options{secure: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	creds := credentials.NewEnvMinio()
	if opts.accessKey != "" {
		creds = credentials.NewStaticV4(opts.accessKey, opts.secretKey, "")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: opts.secure,
		Region: opts.region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client for %s: %w", endpoint, err)
	}

	return NewStore(client), nil
}

// NewStore creates a Store on top of an existing client.
func NewStore(client *minio.Client) *Store {
	return &Store{client: client}
}

// Open stats the object and returns a handle for reading it.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	bucket, key, err := splitName(name)
	if err != nil {
		return nil, err
	}

	info, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &minioBlob{
		client: s.client,
		bucket: bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

func splitName(name string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(name, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", blobstore.ErrInvalidURI, name)
	}
	return bucket, key, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	default:
		return false
	}
}

// minioBlob implements blobstore.Blob for MinIO.
type minioBlob struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (b *minioBlob) Size() int64 {
	return b.size
}

func (b *minioBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), b.size)

	obj, err := b.get(ctx, off, end)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off])
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *minioBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off == b.size {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	if off > b.size {
		return nil, io.EOF
	}

	return b.get(ctx, off, min(off+length, b.size))
}

// get fetches bytes [off, end).
func (b *minioBlob) get(ctx context.Context, off, end int64) (*minio.Object, error) {
	opts := minio.GetObjectOptions{}
	if off > 0 || end < b.size {
		if err := opts.SetRange(off, end-1); err != nil {
			return nil, err
		}
	}

	return b.client.GetObject(ctx, b.bucket, b.key, opts)
}

func (b *minioBlob) Close() error {
	return nil
}
