// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll API.

# Routes

	GET  /health     → "OK"
	GET  /           → "devops-poll API v1"
	GET  /poll       → PollHandler.GetPoll
	POST /poll       → PollHandler.CastVote (form: add=<label>)
	GET  /poll/live  → LiveHandler.Subscribe (websocket)

# Usage

	mux := router.NewRouter(tallyStore, publisher, hub, cfg)
	http.ListenAndServe(":3000", mux)

# Middleware

Every request passes through chi's Recoverer and CORS. Poll routes are
also wrapped in WithLogging.

Unsupported methods on a known path answer 405 Method Not Allowed.
*/
package router
