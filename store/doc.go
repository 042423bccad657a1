// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the poll tally.

Every backend implements TallyStore:

	GetAll(ctx) (*tally.Tally, error)
	Increment(ctx, label) error

Read and write failures, and stored data that is not a valid tally, are
returned as *StorageError. A vote for a label that is not an option fails
with tally.ErrUnknownOption and changes nothing.

# Backends

  - file: FileStore, a flat JSON object of label -> count
  - sqlite / postgres: SQLStore over the poll_option table
  - redis: RedisStore, a list for order plus a hash of counts
  - firestore: FirestoreStore, one document under polls/

Open picks the backend from cliparse.Config.StoreType.

# Concurrency

FileStore.Increment is an unguarded read-modify-write of the whole file;
concurrent votes can overwrite each other and lose increments. Construct
it with serialize=true to run increments one at a time within the process.
Writes are temp-file-and-rename, so a concurrent GetAll never reads a
half-written file.

The SQL, Redis and Firestore backends increment on the server (UPDATE,
Lua script, transaction) and do not lose votes.

# Seeding

Options are registered out of band. Stores implementing Seeder add missing
labels at zero votes without touching existing counts; FileStore only
writes a file when none exists.
*/
package store
