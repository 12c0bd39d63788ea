// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the election API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(e, journal, registry, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Admin operations (X-Caller-Identity / X-Caller-Key of the admin):

	POST /election/candidates - Add candidate (not started only)
	POST /election/voters     - Register voter, returns its caller key
	POST /election/start      - Open voting
	POST /election/end        - Close voting

Voting (registered voter credentials):

	POST /election/votes - Cast the caller's single vote

Reads (public):

	GET /election                     - Election header
	GET /election/candidates          - All candidates
	GET /election/candidates/{id}     - One candidate
	GET /election/voters/{address}    - Voter record
	GET /election/winner              - Winner (ended only)
	GET /election/top?n=N             - Ranked candidates
	GET /election/events?after=&limit= - Journaled events
*/
package router
