/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filesystem

import (
	"context"
	"io"
)

// FileSystem is the uniform stream-open interface over a storage medium.
// All paths are logical locations; each backend defines how they map to
// physical storage.
type FileSystem interface {
	// Name returns the backend name ("local", "s3", ...).
	Name() string

	// Open opens the file at path for reading. A missing file is a
	// NotFoundError. The caller must close the returned stream.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Create opens the file at path for writing, creating any intermediate
	// structure. The write is not durable until the stream is closed.
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// Find returns the physical files under the given path prefix,
	// recursively, in lexical order. A prefix naming a single file maps to
	// that file; a prefix matching nothing yields an empty slice, not an
	// error.
	Find(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Remove deletes the file at path.
	Remove(ctx context.Context, path string) error
}
