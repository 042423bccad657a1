// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/devops-poll/cliparse"
	"github.com/danielhkuo/devops-poll/models"
)

// Open builds the store selected by cfg.StoreType and seeds it with
// cfg.SeedOptions when given.
func Open(ctx context.Context, cfg cliparse.Config) (TallyStore, error) {
	var s TallyStore

	switch cfg.StoreType {
	case models.BackendFile:
		s = NewFileStore(cfg.DataFile, cfg.SerializeWrites)

	case models.BackendSQLite, models.BackendPostgres:
		sqlStore, err := OpenSQL(ctx, cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s = sqlStore

	case models.BackendRedis:
		client, err := ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		s = NewRedisStore(client, cfg.RedisKey)

	case models.BackendFirestore:
		client, err := ConnectFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCredentials)
		if err != nil {
			return nil, err
		}
		s = NewFirestoreStore(client, cfg.PollID)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreType)
	}

	if len(cfg.SeedOptions) > 0 {
		seeder, ok := s.(Seeder)
		if !ok {
			s.Close()
			return nil, fmt.Errorf("store backend %q cannot be seeded", cfg.StoreType)
		}
		if err := seeder.Seed(ctx, cfg.SeedOptions); err != nil {
			s.Close()
			return nil, err
		}
		slog.Info("Tally seeded", "backend", cfg.StoreType, "options", len(cfg.SeedOptions))
	}

	slog.Info("Tally store ready", "backend", cfg.StoreType)
	return s, nil
}
