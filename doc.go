// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the devops-poll API server.

devops-poll is a single-question web poll. The tally is a flat JSON object
mapping each option label to its vote count; the API reports percentages
and accepts one vote per request.

# Starting the Server

With no configuration the server reads and writes data.json in the working
directory and listens on port 3000:

	echo '{"Kubernetes": 0, "Nomad": 0, "Swarm": 0}' > data.json
	go run .

Or seed the file on first start:

	go run . -seed "Kubernetes,Nomad,Swarm"

Settings may also come from a .env file in the working directory.

# Configuration

  - PORT (-p): Server port (default: 3000)
  - STORE_BACKEND (-store): file, sqlite, postgres, redis or firestore
  - DATA_FILE (-f): Tally file for the file backend (default: data.json)
  - DATABASE_URL (-d): Connection string for sqlite and postgres
  - REDIS_URL (-redis), REDIS_KEY (-redis-key): Redis backend
  - FIRESTORE_PROJECT, GOOGLE_CREDENTIALS_FILE, POLL_ID: Firestore backend
  - SEED_OPTIONS (-seed): Labels to register at startup
  - SERIALIZE_WRITES (-serialize): Lock file writes within the process
  - RABBITMQ_URL (-amqp), RABBITMQ_QUEUE (-queue): Vote event publishing
  - IP_HASH_SALT: Salt for hashed voter IPs in vote events
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

# Architecture

  - handlers: HTTP request handlers (poll view, voting, live feed)
  - router: Route definitions using chi
  - middleware: CORS, logging, JSON helpers
  - tally: Tally model, JSON codec and percentage view
  - store: Tally persistence (file, SQL, Redis, Firestore)
  - db: SQL schema creation
  - events: Vote event publishing over RabbitMQ
  - live: WebSocket hub for live results
  - auth: Voter IP fingerprinting
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
