// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/tally"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "poll.db")
	s, err := OpenSQL(context.Background(), models.BackendSQLite, dsn)
	if err != nil {
		t.Fatalf("OpenSQL failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLStoreEmpty(t *testing.T) {
	s := newTestSQLStore(t)

	got, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Expected empty tally, got %v", got.Entries())
	}
}

func TestSQLStoreSeedAndIncrement(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx, []string{"Swarm", "Kubernetes"}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	for _, label := range []string{"Kubernetes", "Kubernetes", "Swarm"} {
		if err := s.Increment(ctx, label); err != nil {
			t.Fatalf("Increment(%q) failed: %v", label, err)
		}
	}

	// re-seeding appends new labels only and keeps counts
	if err := s.Seed(ctx, []string{"Kubernetes", "Nomad"}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	want, _ := tally.FromEntries([]tally.Entry{
		{Label: "Swarm", Votes: 1},
		{Label: "Kubernetes", Votes: 2},
		{Label: "Nomad", Votes: 0},
	})
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want.Entries(), got.Entries())
	}
}

func TestSQLStoreIncrementUnknownOption(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx, []string{"A"}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	err := s.Increment(ctx, "B")
	if !errors.Is(err, tally.ErrUnknownOption) {
		t.Fatalf("Expected ErrUnknownOption, got %v", err)
	}

	got, _ := s.GetAll(ctx)
	if n, _ := got.Count("A"); n != 0 || got.Len() != 1 {
		t.Errorf("Tally changed: %v", got.Entries())
	}
}

func TestSQLStoreClosed(t *testing.T) {
	s := newTestSQLStore(t)
	s.Close()

	_, err := s.GetAll(context.Background())

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Expected StorageError, got %v", err)
	}
	if storageErr.Backend != models.BackendSQLite {
		t.Errorf("Expected sqlite backend, got %q", storageErr.Backend)
	}
}

func TestOpenSQLUnsupportedBackend(t *testing.T) {
	if _, err := OpenSQL(context.Background(), "mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported backend")
	}
}
