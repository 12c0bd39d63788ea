// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - AddCandidateRequest: name
  - RegisterVoterRequest: address
  - VoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - AddCandidateResponse: candidate
  - RegisterVoterResponse: voter, caller_key
  - VoteResponse: candidate_id, total_votes, message
  - PhaseResponse: phase, at
  - CandidatesResponse, TopResponse: ranked or id-ordered candidates
  - WinnerResponse: winner, total_votes, summary
  - EventsResponse: events, next_after
  - ErrorResponse: error, message

# Domain Types

JSON views of the election state:

  - Election: header with phase, counts and timestamps
  - Candidate: id, name, vote_count
  - Voter: address, is_registered, has_voted, voted_candidate_id (only once voted)
  - Event: one journaled transition

Phase strings are "not_started", "started" and "ended".
*/
package models
