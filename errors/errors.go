/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrUnknownBackend is returned when a storage backend name is not recognized
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrUnknownFormat is returned when a data format name is not recognized
	ErrUnknownFormat = errors.New("unknown data format")

	// ErrNotFound is returned when a requested path matches no physical file
	ErrNotFound = errors.New("path not found")

	// ErrSchemaMismatch is returned when files read under one prefix disagree on schema
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidOptions is returned when format or write options fail validation
	ErrInvalidOptions = errors.New("invalid options")
)

// UnknownBackendError represents a request for an unregistered storage backend
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown storage backend %q", e.Name)
}

func (e *UnknownBackendError) Is(target error) bool {
	return target == ErrUnknownBackend
}

// UnknownFormatError represents a request for an unregistered data format
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown data format %q", e.Name)
}

func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

// NotFoundError represents a path that resolved to no physical file
type NotFoundError struct {
	Kind string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s at %q not found", e.Kind, e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SchemaMismatchError represents a file whose columns disagree with the rest of a dataset
type SchemaMismatchError struct {
	Path string
	Want string
	Got  string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch at %q: want [%s], got [%s]", e.Path, e.Want, e.Got)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// InvalidOptionsError represents a format or write option set that failed validation
type InvalidOptionsError struct {
	Format string
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("invalid options for format %q: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("invalid options: %s", e.Reason)
}

func (e *InvalidOptionsError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// Helper functions for creating errors

// NewUnknownBackendError creates a new UnknownBackendError
func NewUnknownBackendError(name string) error {
	return &UnknownBackendError{Name: name}
}

// NewUnknownFormatError creates a new UnknownFormatError
func NewUnknownFormatError(name string) error {
	return &UnknownFormatError{Name: name}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, path string) error {
	return &NotFoundError{Kind: kind, Path: path}
}

// NewSchemaMismatchError creates a new SchemaMismatchError
func NewSchemaMismatchError(path, want, got string) error {
	return &SchemaMismatchError{Path: path, Want: want, Got: got}
}

// NewInvalidOptionsError creates a new InvalidOptionsError
func NewInvalidOptionsError(format, reason string) error {
	return &InvalidOptionsError{Format: format, Reason: reason}
}

// IsUnknownBackend checks if an error is an unknown backend error
func IsUnknownBackend(err error) bool {
	return errors.Is(err, ErrUnknownBackend)
}

// IsUnknownFormat checks if an error is an unknown format error
func IsUnknownFormat(err error) bool {
	return errors.Is(err, ErrUnknownFormat)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSchemaMismatch checks if an error is a schema mismatch error
func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

// IsInvalidOptions checks if an error is an invalid options error
func IsInvalidOptions(err error) bool {
	return errors.Is(err, ErrInvalidOptions)
}
