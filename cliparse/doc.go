// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadEnvFile reads a .env file into the environment first; variables that
are already set are not overridden:

	cliparse.LoadEnvFile(".env")

# CLI Flags and Environment Variables

	-p                      PORT                     (default 3000)
	-store                  STORE_BACKEND            (default file)
	-f                      DATA_FILE                (default data.json)
	-d                      DATABASE_URL
	-redis                  REDIS_URL                (default localhost:6379)
	-redis-key              REDIS_KEY                (default poll)
	-firestore-project      FIRESTORE_PROJECT
	-firestore-credentials  GOOGLE_CREDENTIALS_FILE
	-poll-id                POLL_ID                  (default devops)
	-seed                   SEED_OPTIONS             (comma-separated)
	-serialize              SERIALIZE_WRITES         (default false)
	-amqp                   RABBITMQ_URL             (empty disables events)
	-queue                  RABBITMQ_QUEUE           (default votes)
	-ip-salt                IP_HASH_SALT
	-log-level              LOG_LEVEL                (default info)
	-log-format             LOG_FORMAT               (default text)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or is out of range
  - STORE_BACKEND is not one of file, sqlite, postgres, redis, firestore
  - DATABASE_URL is missing for sqlite or postgres
  - FIRESTORE_PROJECT is missing for firestore
  - SERIALIZE_WRITES is not a boolean
  - LOG_FORMAT is not text or json
*/
package cliparse
