// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events publishes a message for every vote that was persisted.

The tally store stays the source of truth; events are a notification for
downstream consumers (audit, analytics). A failed publish is logged by the
caller and never fails the vote.

# Publishers

  - AMQPPublisher: JSON messages on a durable RabbitMQ queue (default "votes")
  - NopPublisher: used when RABBITMQ_URL is empty

# Message

	{"id":"<uuid>","label":"Kubernetes","cast_at":"2025-01-02T15:04:05Z","ip_hash":"9f2c..."}

ip_hash is present only when IP_HASH_SALT is configured.
*/
package events
