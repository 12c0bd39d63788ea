// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "time"

// Phase is the election lifecycle state. It only moves forward.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseStarted
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseStarted:
		return "started"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Identity is an authenticated principal (an address, a username, ...).
type Identity string

// Caller carries the identity of whoever invokes an operation.
// The election trusts it; authentication happens before the call.
type Caller struct {
	Identity Identity
}

type Candidate struct {
	ID        uint64
	Name      string
	VoteCount uint64
}

type Voter struct {
	Address          Identity
	IsRegistered     bool
	HasVoted         bool
	VotedCandidateID uint64 // zero unless HasVoted
}

// Info is a point-in-time copy of the election header.
type Info struct {
	Name           string
	Admin          Identity
	Phase          Phase
	CandidateCount uint64
	VoterCount     uint64
	TotalVotes     uint64
	StartedAt      *time.Time
	EndedAt        *time.Time
	Seq            uint64
}
