// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/tally"
)

// FileStore keeps the tally in a single JSON file holding a flat
// label -> count object.
type FileStore struct {
	path string
	// nil unless writes are serialized
	mu *sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path.
// With serialize set, Increment calls are run one at a time in this process.
func NewFileStore(path string, serialize bool) *FileStore {
	s := &FileStore{path: path}
	if serialize {
		s.mu = &sync.Mutex{}
	}
	return s
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// GetAll reads and parses the whole file
func (s *FileStore) GetAll(ctx context.Context) (*tally.Tally, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load()
}

// Increment reads the file, adds one vote to label and rewrites the file.
//
// Without serialize there is no lock around this read-modify-write: two
// concurrent votes may read the same counts and one of the increments is
// lost. The rewrite goes through a temp file and rename, so readers always
// see either the old or the new file, never a partial one.
func (s *FileStore) Increment(ctx context.Context, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	t, err := s.load()
	if err != nil {
		return err
	}

	if err := t.Increment(label); err != nil {
		if errors.Is(err, tally.ErrUnknownOption) {
			return err
		}
		return storageErr(models.BackendFile, "update", err)
	}

	return s.save(t)
}

// Seed writes a zero tally for labels when the file does not exist yet.
// An existing file is left as is.
func (s *FileStore) Seed(ctx context.Context, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return storageErr(models.BackendFile, "stat", err)
	}

	slog.Info("seeding tally file", "path", s.path, "options", len(labels))
	return s.save(tally.New(labels...))
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (*tally.Tally, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, storageErr(models.BackendFile, "read", err)
	}

	var t tally.Tally
	if err := t.UnmarshalJSON(data); err != nil {
		return nil, storageErr(models.BackendFile, "parse", err)
	}
	return &t, nil
}

func (s *FileStore) save(t *tally.Tally) error {
	data, err := t.MarshalJSON()
	if err != nil {
		return storageErr(models.BackendFile, "encode", err)
	}

	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return storageErr(models.BackendFile, "write", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storageErr(models.BackendFile, "write", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return storageErr(models.BackendFile, "write", err)
	}
	if err := tmp.Close(); err != nil {
		return storageErr(models.BackendFile, "write", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return storageErr(models.BackendFile, "write", err)
	}
	return nil
}
