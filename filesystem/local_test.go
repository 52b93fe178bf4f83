/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filesystem

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/datakit/errors"
)

func TestLocalWriteRead(t *testing.T) {
	ctx := context.Background()
	fs := NewLocal()
	path := filepath.Join(t.TempDir(), "nested", "dir", "my-file.txt")

	w, err := fs.Create(ctx, path)
	require.NoError(t, err)
	_, err = w.Write([]byte("What is my purpose?"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := fs.Open(ctx, path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "What is my purpose?", string(data))
}

func TestLocalOpenMissing(t *testing.T) {
	fs := NewLocal()
	_, err := fs.Open(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.IsNotFound(err))
}

func TestLocalFind(t *testing.T) {
	ctx := context.Background()
	fs := NewLocal()
	root := t.TempDir()

	paths := []string{
		filepath.Join(root, "files", "top"),
		filepath.Join(root, "files", "one", "level"),
		filepath.Join(root, "files", "one", "two", "three"),
	}
	for _, p := range paths {
		w, err := fs.Create(ctx, p)
		require.NoError(t, err)
		_, err = w.Write([]byte(filepath.Base(p)))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	found, err := fs.Find(ctx, filepath.Join(root, "files"))
	require.NoError(t, err)
	assert.ElementsMatch(t, paths, found)

	found, err = fs.Find(ctx, filepath.Join(root, "files", "one"))
	require.NoError(t, err)
	assert.ElementsMatch(t, paths[1:], found)

	// An exact file maps to itself
	found, err = fs.Find(ctx, paths[0])
	require.NoError(t, err)
	assert.Equal(t, []string{paths[0]}, found)

	// A missing prefix matches nothing
	found, err = fs.Find(ctx, filepath.Join(root, "absent"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLocalExistsRemove(t *testing.T) {
	ctx := context.Background()
	fs := NewLocal()
	path := filepath.Join(t.TempDir(), "f.txt")

	ok, err := fs.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	w, err := fs.Create(ctx, path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ok, err = fs.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, fs.Remove(ctx, path))
	assert.True(t, errors.IsNotFound(fs.Remove(ctx, path)))
}

func TestFactory(t *testing.T) {
	ctx := context.Background()

	fs, err := New(ctx, Options{Name: "local"})
	require.NoError(t, err)
	assert.Equal(t, "local", fs.Name())

	// Empty name defaults to local
	fs, err = New(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, "local", fs.Name())

	_, err = New(ctx, Options{Name: "gopher-drive"})
	assert.True(t, errors.IsUnknownBackend(err))
}

func TestSplitS3Path(t *testing.T) {
	bucket, key, err := splitS3Path("s3://my-bucket/a/b/c.tsv")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "a/b/c.tsv", key)

	bucket, key, err = splitS3Path("my-bucket/c.tsv")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "c.tsv", key)

	_, _, err = splitS3Path("just-a-bucket")
	assert.True(t, errors.IsInvalidOptions(err))
}
