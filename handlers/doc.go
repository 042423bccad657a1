// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll API.

# Handler Types

  - PollHandler: reads the tally as percentages and records votes
  - LiveHandler: upgrades to a WebSocket that streams the view after each vote

Handlers are created via constructor functions that accept a store and Config:

	pollHandler := handlers.NewPollHandler(s, publisher, hub, cfg)

# Endpoints

	GET  /poll       → GetPoll (JSON array of {label, percentage})
	POST /poll       → CastVote (form body add=<label>, empty 200)
	GET  /poll/live  → Subscribe (WebSocket)

Percentages are whole numbers rendered as strings, in tally order. A tally
with no votes reports "0" for every option.

# Errors

A vote for a label not in the tally is rejected with 400 and the tally is
left as is. Any failure to read, parse or write storage is a 500 with a
generic "Storage error" message; details go to the log only.

# Notifications

After a vote is stored, CastVote publishes a VoteEvent and pushes the new
view to live subscribers. Both are best effort: failures are logged and the
vote still succeeds.
*/
package handlers
