/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory FileSystem implementation for testing
package mock

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/datakit/errors"
)

// FileSystem is an in-memory implementation of filesystem.FileSystem for testing
type FileSystem struct {
	mu        sync.RWMutex
	files     map[string][]byte
	openErr   error
	createErr error
	findErr   error
}

// New creates a new mock FileSystem
func New() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
	}
}

// WithOpenError makes Open operations return an error
func (m *FileSystem) WithOpenError(err error) *FileSystem {
	m.openErr = err
	return m
}

// WithCreateError makes Create operations return an error
func (m *FileSystem) WithCreateError(err error) *FileSystem {
	m.createErr = err
	return m
}

// WithFindError makes Find operations return an error
func (m *FileSystem) WithFindError(err error) *FileSystem {
	m.findErr = err
	return m
}

// Seed stores a file directly, bypassing the stream interface
func (m *FileSystem) Seed(path string, data []byte) *FileSystem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return m
}

// Bytes returns the stored content of a file, if present
func (m *FileSystem) Bytes(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

// Len returns the number of stored files
func (m *FileSystem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

func (m *FileSystem) Name() string { return "mock" }

func (m *FileSystem) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	m.mu.RLock()
	data, ok := m.files[path]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("file", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *FileSystem) Create(_ context.Context, path string) (io.WriteCloser, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &memWriter{fs: m, path: path}, nil
}

func (m *FileSystem) Find(_ context.Context, prefix string) ([]string, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for p := range m.files {
		if p == prefix || strings.HasPrefix(p, strings.TrimSuffix(prefix, "/")+"/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *FileSystem) Exists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *FileSystem) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; !ok {
		return errors.NewNotFoundError("file", path)
	}
	delete(m.files, path)
	return nil
}

// memWriter buffers writes and commits the file on Close
type memWriter struct {
	fs   *FileSystem
	path string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.files[w.path] = append([]byte(nil), w.buf.Bytes()...)
	return nil
}
