package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/extcheck/blobstore"
)

func TestSplitName(t *testing.T) {
	bucket, key, err := splitName("solutions/run-1/ref.txt")
	require.NoError(t, err)
	assert.Equal(t, "solutions", bucket)
	assert.Equal(t, "run-1/ref.txt", key)

	for _, name := range []string{"", "bucket", "bucket/", "/key"} {
		_, _, err := splitName(name)
		assert.ErrorIs(t, err, blobstore.ErrInvalidURI, name)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchBucket"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

func TestNew_InvalidEndpoint(t *testing.T) {
	_, err := New("http://localhost:9000/with/path")
	require.Error(t, err)
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-extcheck"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	key := fmt.Sprintf("run-%d/ref.txt", time.Now().UnixNano())
	data := []byte("[[a,b],[c],[d,e]]")
	_, err = client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	defer func() { _ = client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}) }()

	store := NewStore(client)

	blob, err := store.Open(ctx, bucket+"/"+key)
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(len(data)), blob.Size())

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)

	buf := make([]byte, 3)
	n, err := blob.ReadAt(ctx, buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "[c]", string(buf))

	_, err = store.Open(ctx, bucket+"/missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
