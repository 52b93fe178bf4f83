/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datakit

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/datakit/errors"
	"github.com/suparena/datakit/filesystem"
)

// Manager is a thread-safe registry of named storage backends, letting an
// application address configured filesystems by name ("staging", "archive").
type Manager struct {
	mu     sync.RWMutex
	stores map[string]filesystem.FileSystem
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		stores: make(map[string]filesystem.FileSystem),
	}
}

// Register stores the provided FileSystem under the given name.
func (m *Manager) Register(name string, fs filesystem.FileSystem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.stores[name]; exists {
		return fmt.Errorf("filesystem with name %q already registered", name)
	}
	m.stores[name] = fs
	return nil
}

// Get retrieves the FileSystem registered under the given name.
func (m *Manager) Get(name string) (filesystem.FileSystem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fs, exists := m.stores[name]
	if !exists {
		return nil, errors.NewUnknownBackendError(name)
	}
	return fs, nil
}

// Remove deletes the FileSystem registered under the given name.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.stores[name]; !exists {
		return errors.NewUnknownBackendError(name)
	}
	delete(m.stores, name)
	return nil
}

// List returns all registered backend names, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.stores))
	for name := range m.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
