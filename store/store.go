// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/devops-poll/tally"
)

// TallyStore owns the persisted vote counts.
type TallyStore interface {
	// GetAll loads the full tally.
	GetAll(ctx context.Context) (*tally.Tally, error)
	// Increment adds one vote to label and persists it. Unknown labels
	// fail with tally.ErrUnknownOption and leave storage untouched.
	Increment(ctx context.Context, label string) error
	Close() error
}

// Seeder is implemented by stores that can register options at startup.
// Seeding only adds missing labels at zero votes; existing counts are kept.
type Seeder interface {
	Seed(ctx context.Context, labels []string) error
}

// StorageError reports that the backing store could not be read or written,
// or held data that is not a valid tally.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(backend, op string, err error) error {
	return &StorageError{Backend: backend, Op: op, Err: err}
}
