// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/devops-poll/models"
)

// Publisher announces votes that have been persisted
type Publisher interface {
	PublishVote(ctx context.Context, event models.VoteEvent) error
	Close() error
}

// NewVoteEvent stamps a vote for label with a fresh ID and the current time
func NewVoteEvent(label, ipHash string) models.VoteEvent {
	return models.VoteEvent{
		ID:     uuid.NewString(),
		Label:  label,
		CastAt: time.Now().UTC(),
		IPHash: ipHash,
	}
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishVote(context.Context, models.VoteEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
