// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/devops-poll/db"
	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/tally"
)

// SQLStore keeps the tally in the poll_option table.
// Increment is a single UPDATE, so concurrent votes are never lost.
type SQLStore struct {
	db      *sql.DB
	backend string
}

// NewSQLStore wraps an open database. backend is models.BackendSQLite or
// models.BackendPostgres and is only used in errors and logs.
func NewSQLStore(db *sql.DB, backend string) *SQLStore {
	return &SQLStore{db: db, backend: backend}
}

// OpenSQL connects to the database, verifies the connection and creates
// the schema.
func OpenSQL(ctx context.Context, backend, databaseURL string) (*SQLStore, error) {
	driver := backend
	if backend != models.BackendSQLite && backend != models.BackendPostgres {
		return nil, fmt.Errorf("unsupported SQL backend %q", backend)
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewSQLStore(conn, backend), nil
}

// GetAll returns every option ordered by position
func (s *SQLStore) GetAll(ctx context.Context) (*tally.Tally, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, votes FROM poll_option ORDER BY position
	`)
	if err != nil {
		return nil, storageErr(s.backend, "query", err)
	}
	defer rows.Close()

	entries := []tally.Entry{}
	for rows.Next() {
		var e tally.Entry
		if err := rows.Scan(&e.Label, &e.Votes); err != nil {
			return nil, storageErr(s.backend, "scan", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(s.backend, "query", err)
	}

	t, err := tally.FromEntries(entries)
	if err != nil {
		return nil, storageErr(s.backend, "parse", err)
	}
	return t, nil
}

// Increment adds one vote to label
func (s *SQLStore) Increment(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll_option SET votes = votes + 1 WHERE label = $1
	`, label)
	if err != nil {
		return storageErr(s.backend, "update", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(s.backend, "update", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", tally.ErrUnknownOption, label)
	}
	return nil
}

// Seed appends missing labels after the existing options
func (s *SQLStore) Seed(ctx context.Context, labels []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(s.backend, "seed", err)
	}
	defer tx.Rollback()

	for _, label := range labels {
		// WHERE true keeps SQLite from reading ON CONFLICT as a join clause
		_, err := tx.ExecContext(ctx, `
			INSERT INTO poll_option (label, position, votes)
			SELECT CAST($1 AS TEXT), COALESCE(MAX(position), 0) + 1, 0 FROM poll_option WHERE true
			ON CONFLICT (label) DO NOTHING
		`, label)
		if err != nil {
			return storageErr(s.backend, "seed", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(s.backend, "seed", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
