// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL tally store.

# Schema Creation

CreateSchema initializes the poll_option table:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.
The statements are portable between SQLite (modernc.org/sqlite) and
PostgreSQL (github.com/lib/pq).

# Tables

  - poll_option: label (primary key), position (display order), votes

The CHECK constraint keeps votes non-negative.

# Indexes

  - poll_option.position
*/
package db
