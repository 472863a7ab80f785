// Package blobstore provides storage abstraction for solution files.
//
// A Store opens read-only Blobs by name. Locations are resolved from
// command-line arguments with ParseURI:
//
//	reference.txt            -> file, "reference.txt"
//	file:///data/ref.txt     -> file, "/data/ref.txt"
//	s3://bucket/runs/a.txt   -> s3, "bucket/runs/a.txt"
//	minio://bucket/a.txt.zst -> minio, "bucket/a.txt.zst"
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory blobs for tests
//   - s3.Store: Amazon S3 with range reads and parallel downloads
//   - minio.Store: MinIO and other S3-compatible endpoints
//
// Remote stores take the bucket from the first path element of the name.
package blobstore
