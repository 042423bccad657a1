// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types shared by handlers, events and the
live feed.

# Response Types

  - OptionPercentage: label, percentage (integer rendered as a string)
  - ErrorResponse: error, message

# Event Types

  - VoteEvent: id, label, cast_at, ip_hash (optional)

# Constants

Store backends:

	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"

Vote form field:

	VoteField = "add"
*/
package models
