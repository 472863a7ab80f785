// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// It works against MinIO and other S3-compatible endpoints such as Ceph,
// SeaweedFS and Garage.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithSecure(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blob, err := store.Open(ctx, "solutions/run-42/candidate.txt")
//
// Without explicit credentials the MINIO_ROOT_USER / MINIO_ROOT_PASSWORD
// (or MINIO_ACCESS_KEY / MINIO_SECRET_KEY) environment variables are used.
package minio
