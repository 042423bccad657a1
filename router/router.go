// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/devops-poll/cliparse"
	"github.com/danielhkuo/devops-poll/events"
	"github.com/danielhkuo/devops-poll/handlers"
	"github.com/danielhkuo/devops-poll/live"
	"github.com/danielhkuo/devops-poll/middleware"
	"github.com/danielhkuo/devops-poll/store"
)

func NewRouter(s store.TallyStore, publisher events.Publisher, hub *live.Hub, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	// A panicking handler answers 500 instead of taking the process down
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(s, publisher, hub, cfg)
	liveHandler := handlers.NewLiveHandler(s, hub)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll
	r.Get("/poll", middleware.WithLogging(pollHandler.GetPoll))
	r.Post("/poll", middleware.WithLogging(pollHandler.CastVote))
	r.Get("/poll/live", middleware.WithLogging(liveHandler.Subscribe))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("devops-poll API v1"))
	})

	return r
}
