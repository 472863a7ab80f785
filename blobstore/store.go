package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

var (
	// ErrInvalidURI is returned for locations that cannot be parsed.
	ErrInvalidURI = errors.New("blobstore: invalid uri")
	// ErrUnsupportedScheme is returned for URI schemes without a store.
	ErrUnsupportedScheme = errors.New("blobstore: unsupported scheme")
)

// Store opens solution blobs by name.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a solution blob.
type Blob interface {
	io.Closer

	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// ReadRange returns a reader for length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)

	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that support memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// Schemes understood by ParseURI.
const (
	SchemeFile  = "file"
	SchemeS3    = "s3"
	SchemeMinIO = "minio"
)

// Location addresses a blob within a store.
type Location struct {
	// Scheme selects the store.
	Scheme string
	// Name is the store-relative blob name. Remote names are "bucket/key".
	Name string
}

func (l Location) String() string {
	if l.Scheme == SchemeFile {
		return l.Name
	}
	return l.Scheme + "://" + l.Name
}

// Bucket splits a remote name into bucket and key.
func (l Location) Bucket() (bucket, key string) {
	bucket, key, _ = strings.Cut(l.Name, "/")
	return bucket, key
}

// ParseURI resolves a command-line path or URI.
//
// Plain paths and file:// URIs address the local file system;
// s3://bucket/key and minio://bucket/key address object stores.
func ParseURI(raw string) (Location, error) {
	if raw == "" {
		return Location{}, ErrInvalidURI
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Location{Scheme: SchemeFile, Name: filepath.Clean(raw)}, nil
	}

	switch scheme = strings.ToLower(scheme); scheme {
	case SchemeFile:
		if rest == "" {
			return Location{}, ErrInvalidURI
		}
		return Location{Scheme: SchemeFile, Name: filepath.FromSlash(rest)}, nil
	case SchemeS3, SchemeMinIO:
		loc := Location{Scheme: scheme, Name: rest}
		if bucket, key := loc.Bucket(); bucket == "" || key == "" {
			return Location{}, ErrInvalidURI
		}
		return loc, nil
	default:
		return Location{}, ErrUnsupportedScheme
	}
}
