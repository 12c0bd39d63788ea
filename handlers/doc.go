// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the election API.

# Handler Type

ElectionHandler wraps the election, the event feed and the config:

	h := handlers.NewElectionHandler(e, journal, cfg)

Handlers that act for someone take the authenticated caller as a third
argument and are mounted behind middleware.RequireCaller. Read handlers are
plain http.HandlerFuncs.

# Election Lifecycle

The election moves through three phases: not_started → started → ended

	POST /election/candidates → AddCandidate (not_started only)
	POST /election/voters     → RegisterVoter (returns caller_key)
	POST /election/start      → StartElection (needs a candidate)
	POST /election/end        → EndElection

Only the configured admin may call these.

# Voting

	POST /election/votes → Vote {candidate_id}

The caller must be a registered voter presenting the key issued at
registration. Each voter votes once.

# Errors

Election errors map to statuses:

  - unauthorized, not registered: 403
  - invalid phase, already registered, already voted: 409
  - invalid candidate, name or address, no candidates: 400
  - not found: 404

Anything else is logged and answered with 500.

# Results

GetWinner includes a human readable summary built with go-humanize:

	Alice won with 1,204 of 2,113 votes (57%), ended 2 hours ago
*/
package handlers
