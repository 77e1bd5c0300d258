// Package storage defines persistence contracts for per-character progress.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a requested status row or character store is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a character store already exists at the target path.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrVersionMismatch matches any *VersionMismatchError.
	ErrVersionMismatch = errors.New("store version mismatch")
)

// VersionMismatchError reports a character store written by an unsupported
// schema version. No status rows are read from such a store.
type VersionMismatchError struct {
	Found     string
	Supported string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("store version %q is not supported (want %q)", e.Found, e.Supported)
}

// Is lets errors.Is match ErrVersionMismatch.
func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// Profile is the character description kept in a store's config table.
type Profile struct {
	Name        string
	Type        string
	Profession1 string
	Profession2 string
}

// StatusRecord is one row of the status table.
type StatusRecord struct {
	Key   string
	State string
}

// StatusStore persists the progress of a single character.
type StatusStore interface {
	// Get returns the stored state for key, or ErrNotFound. An empty state is
	// a cleared row and is returned without error.
	Get(ctx context.Context, key string) (string, error)
	// Set upserts the state for key.
	Set(ctx context.Context, key, state string) error
	// Clear stores the empty state for key.
	Clear(ctx context.Context, key string) error
	// List returns every row ordered by key.
	List(ctx context.Context) ([]StatusRecord, error)
	// Profile returns the character description.
	Profile(ctx context.Context) (Profile, error)
	Close() error
}
