// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, s3.WithRegion("eu-central-1"))
//	if err != nil { ... }
//
//	blob, err := store.Open(ctx, "my-bucket/runs/reference.txt")
//
// # Features
//
//   - Range reads for partial fetches
//   - Parallel ranged downloads for whole-object reads of large solutions
//   - Default AWS credential chain
package s3
