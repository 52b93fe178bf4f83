/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filesystem

import (
	"context"

	"github.com/suparena/datakit/errors"
)

// Options selects and configures a storage backend.
type Options struct {
	// Name of the backend: "local" or "s3".
	Name string

	// Region is the AWS region for the s3 backend.
	Region string

	// AccessKey and SecretKey are optional static credentials for the s3
	// backend; the default AWS credential chain applies when empty.
	AccessKey string
	SecretKey string

	// EndpointURL overrides the storage service URL, for S3-compatible
	// stores.
	EndpointURL string

	// AssumedRoles is a chain of IAM role ARNs; each role is assumed with
	// the credentials of the previous one.
	AssumedRoles []string
}

// New constructs the FileSystem named by the options. An unrecognized backend
// name is an UnknownBackendError.
func New(ctx context.Context, opts Options) (FileSystem, error) {
	switch opts.Name {
	case "", "local":
		return NewLocal(), nil
	case "s3":
		return NewS3(ctx, opts)
	}
	return nil, errors.NewUnknownBackendError(opts.Name)
}
