// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/danielhkuo/devops-poll/tally"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := ConnectRedis(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("ConnectRedis failed: %v", err)
	}
	s := NewRedisStore(client, "poll")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStoreSeedAndIncrement(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx, []string{"Swarm", "Kubernetes", "Swarm"}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := s.Increment(ctx, "Kubernetes"); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}

	got, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	want, _ := tally.FromEntries([]tally.Entry{
		{Label: "Swarm", Votes: 0},
		{Label: "Kubernetes", Votes: 1},
	})
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want.Entries(), got.Entries())
	}

	if v := mr.HGet("poll:votes", "Kubernetes"); v != "1" {
		t.Errorf("Expected raw count 1, got %q", v)
	}
}

func TestRedisStoreSeedKeepsCounts(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	s.Seed(ctx, []string{"A"})
	s.Increment(ctx, "A")
	if err := s.Seed(ctx, []string{"A", "B"}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, _ := s.GetAll(ctx)
	if n, _ := got.Count("A"); n != 1 {
		t.Errorf("Expected A=1, got %d", n)
	}
	if got.Len() != 2 {
		t.Errorf("Expected 2 options, got %d", got.Len())
	}
}

func TestRedisStoreIncrementUnknownOption(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	s.Seed(ctx, []string{"A"})

	err := s.Increment(ctx, "B")
	if !errors.Is(err, tally.ErrUnknownOption) {
		t.Fatalf("Expected ErrUnknownOption, got %v", err)
	}
	if mr.HGet("poll:votes", "B") != "" {
		t.Error("Unknown option was written")
	}
}

func TestRedisStoreEmpty(t *testing.T) {
	s, _ := newTestRedisStore(t)

	got, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Expected empty tally, got %v", got.Entries())
	}
}

func TestRedisStoreMalformed(t *testing.T) {
	s, mr := newTestRedisStore(t)

	mr.RPush("poll:options", "A", "B")
	mr.HSet("poll:votes", "A", "3")
	mr.HSet("poll:votes", "B", "lots")

	_, err := s.GetAll(context.Background())
	if !errors.Is(err, tally.ErrMalformed) {
		t.Fatalf("Expected ErrMalformed, got %v", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	_, err := s.GetAll(context.Background())

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Expected StorageError, got %v", err)
	}
}

func TestConnectRedisURL(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("ConnectRedis failed: %v", err)
	}
	client.Close()

	if _, err := ConnectRedis(context.Background(), "redis://localhost:6379/notadb"); err == nil {
		t.Error("Expected error for invalid URL")
	}
}
