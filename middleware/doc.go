// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Logging

WithLogging logs the start and end of every request, including the status
code and duration:

	mux.Get("/poll", middleware.WithLogging(handler.GetPoll))

The wrapped ResponseWriter still supports Hijack, so websocket upgrades
pass through it.

# CORS

CORS echoes the request Origin (or "*") so the poll frontend can be served
from another host. Preflight OPTIONS requests are answered directly.

# Responses

	middleware.JSONResponse(w, http.StatusOK, view)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown poll option")

ErrorResponse writes models.ErrorResponse with the status text as "error".
*/
package middleware
