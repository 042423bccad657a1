// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/devops-poll/live"
	"github.com/danielhkuo/devops-poll/store"
	"github.com/danielhkuo/devops-poll/tally"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	store store.TallyStore
	hub   *live.Hub
}

func NewLiveHandler(s store.TallyStore, hub *live.Hub) *LiveHandler {
	return &LiveHandler{store: s, hub: hub}
}

// Subscribe handles GET /poll/live
// Upgrades to a websocket, sends the current view and then one view per vote
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetAll(r.Context())
	if err != nil {
		storageFailure(w, "failed to load tally for live feed", err)
		return
	}

	initial, err := json.Marshal(tally.ComputeView(t))
	if err != nil {
		storageFailure(w, "failed to encode live view", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	slog.Debug("live client connected", "remote", r.RemoteAddr)
	h.hub.Serve(conn, initial)
	slog.Debug("live client disconnected", "remote", r.RemoteAddr)
}
