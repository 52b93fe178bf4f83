/*
Package filesystem provides uniform stream-oriented access to local disk and
S3-compatible object storage.

The FileSystem interface resolves a logical path to an open byte stream for
reading or writing, lists the physical files under a path prefix, and checks
or removes individual files. Behavior is identical across backends: a missing
path is a NotFoundError regardless of medium, and writers always create any
intermediate structure (directories locally, nothing on S3) on demand.

Backends are constructed through New:

	fs, err := filesystem.New(filesystem.Options{Name: "s3", Region: "eu-west-1"})
	if err != nil { ... }

The s3 backend accepts paths of the form "s3://bucket/key" or "bucket/key",
supports endpoint overrides for S3-compatible stores, and can assume a chain
of IAM roles, each role assumed with the credentials of the previous one.

Package filesystem/mock holds an in-memory implementation for tests.
*/
package filesystem
