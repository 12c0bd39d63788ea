package models

import "time"

// Phase values as exposed over the API
const (
	PhaseNotStarted = "not_started"
	PhaseStarted    = "started"
	PhaseEnded      = "ended"
)

// Request types

type AddCandidateRequest struct {
	Name string `json:"name"`
}

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

type VoteRequest struct {
	CandidateID uint64 `json:"candidate_id"`
}

// Response types

type AddCandidateResponse struct {
	Candidate Candidate `json:"candidate"`
}

// CallerKey is what the voter sends as X-Caller-Key when voting.
type RegisterVoterResponse struct {
	Voter     Voter  `json:"voter"`
	CallerKey string `json:"caller_key"`
}

type VoteResponse struct {
	CandidateID uint64 `json:"candidate_id"`
	TotalVotes  uint64 `json:"total_votes"`
	Message     string `json:"message"`
}

type PhaseResponse struct {
	Phase string    `json:"phase"`
	At    time.Time `json:"at"`
}

type CandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type WinnerResponse struct {
	Winner     Candidate `json:"winner"`
	TotalVotes uint64    `json:"total_votes"`
	Summary    string    `json:"summary"`
}

type TopResponse struct {
	N          int         `json:"n"`
	Candidates []Candidate `json:"candidates"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
	// NextAfter is the seq to pass as ?after= for the next page.
	NextAfter uint64 `json:"next_after"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Phase  string `json:"phase"`
	Seq    uint64 `json:"seq"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Domain types

type Election struct {
	Name           string     `json:"name"`
	Admin          string     `json:"admin"`
	Phase          string     `json:"phase"`
	CandidateCount uint64     `json:"candidate_count"`
	VoterCount     uint64     `json:"voter_count"`
	TotalVotes     uint64     `json:"total_votes"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	Seq            uint64     `json:"seq"`
}

type Candidate struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	VoteCount uint64 `json:"vote_count"`
}

type Voter struct {
	Address          string  `json:"address"`
	IsRegistered     bool    `json:"is_registered"`
	HasVoted         bool    `json:"has_voted"`
	VotedCandidateID *uint64 `json:"voted_candidate_id,omitempty"`
}

type Event struct {
	Seq           uint64    `json:"seq"`
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	CandidateID   uint64    `json:"candidate_id,omitempty"`
	CandidateName string    `json:"candidate_name,omitempty"`
	Voter         string    `json:"voter,omitempty"`
}
