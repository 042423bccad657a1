// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/danielhkuo/devops-poll/cliparse"
	"github.com/danielhkuo/devops-poll/models"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     cliparse.Config
		want    string
		wantErr bool
	}{
		{
			name: "file",
			cfg:  cliparse.Config{StoreType: models.BackendFile, DataFile: filepath.Join(dir, "data.json")},
			want: "*store.FileStore",
		},
		{
			name: "sqlite",
			cfg:  cliparse.Config{StoreType: models.BackendSQLite, DatabaseURL: filepath.Join(dir, "poll.db")},
			want: "*store.SQLStore",
		},
		{
			name: "redis",
			cfg:  cliparse.Config{StoreType: models.BackendRedis, RedisURL: mr.Addr(), RedisKey: "poll"},
			want: "*store.RedisStore",
		},
		{
			name:    "unknown backend",
			cfg:     cliparse.Config{StoreType: "etcd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.SeedOptions = []string{"A", "B"}

			s, err := Open(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					s.Close()
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer s.Close()

			if got := typeName(s); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}

			tl, err := s.GetAll(context.Background())
			if err != nil {
				t.Fatalf("GetAll failed: %v", err)
			}
			if tl.Len() != 2 || tl.Total() != 0 {
				t.Errorf("Expected seeded zero tally, got %v", tl.Entries())
			}
		})
	}
}

func TestOpenFileWithoutSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(context.Background(), cliparse.Config{StoreType: models.BackendFile, DataFile: path})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	// the file store does not create anything until seeded
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no tally file, got %v", err)
	}
}

func typeName(s TallyStore) string {
	switch s.(type) {
	case *FileStore:
		return "*store.FileStore"
	case *SQLStore:
		return "*store.SQLStore"
	case *RedisStore:
		return "*store.RedisStore"
	case *FirestoreStore:
		return "*store.FirestoreStore"
	default:
		return "unknown"
	}
}
