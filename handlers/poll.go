// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielhkuo/devops-poll/auth"
	"github.com/danielhkuo/devops-poll/cliparse"
	"github.com/danielhkuo/devops-poll/events"
	"github.com/danielhkuo/devops-poll/middleware"
	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/store"
	"github.com/danielhkuo/devops-poll/tally"
)

const (
	maxFormBytes  = 1 << 20
	notifyTimeout = 5 * time.Second
)

// ViewBroadcaster receives the fresh view after each vote
type ViewBroadcaster interface {
	BroadcastView(view []models.OptionPercentage)
}

type PollHandler struct {
	store     store.TallyStore
	publisher events.Publisher
	live      ViewBroadcaster
	cfg       cliparse.Config

	// liveMu orders reload+broadcast so the last view sent is the newest
	liveMu sync.Mutex
}

// NewPollHandler creates the poll handler. publisher and live may be nil.
func NewPollHandler(s store.TallyStore, publisher events.Publisher, live ViewBroadcaster, cfg cliparse.Config) *PollHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PollHandler{store: s, publisher: publisher, live: live, cfg: cfg}
}

// GetPoll handles GET /poll
// Returns the percentage of votes for every option, in tally order
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetAll(r.Context())
	if err != nil {
		storageFailure(w, "failed to load tally", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally.ComputeView(t))
}

// CastVote handles POST /poll
// Form body add=<label>; responds with an empty 200 once the vote is stored
func (h *PollHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	label := r.PostFormValue(models.VoteField)

	err := h.store.Increment(r.Context(), label)
	if errors.Is(err, tally.ErrUnknownOption) {
		slog.Warn("vote for unknown option rejected", "label", label)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown poll option: "+label)
		return
	}
	if err != nil {
		storageFailure(w, "failed to record vote", err)
		return
	}

	slog.Info("vote recorded", "label", label)

	// The vote is durable from here on: answer first, then notify.
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	// Notifications must not be cut short by the client going away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
	defer cancel()
	h.notify(ctx, r, label)
}

func (h *PollHandler) notify(ctx context.Context, r *http.Request, label string) {
	event := events.NewVoteEvent(label, auth.VoterFingerprint(r, h.cfg.IPHashSalt))
	if err := h.publisher.PublishVote(ctx, event); err != nil {
		slog.Error("failed to publish vote event", "error", err, "event_id", event.ID)
	}

	if h.live == nil {
		return
	}

	h.liveMu.Lock()
	defer h.liveMu.Unlock()

	t, err := h.store.GetAll(ctx)
	if err != nil {
		slog.Error("failed to load tally for live update", "error", err)
		return
	}
	h.live.BroadcastView(tally.ComputeView(t))
}

func storageFailure(w http.ResponseWriter, msg string, err error) {
	var storageErr *store.StorageError
	if errors.As(err, &storageErr) {
		slog.Error(msg, "error", err, "backend", storageErr.Backend, "op", storageErr.Op)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	slog.Error(msg, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
}
