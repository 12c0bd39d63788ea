// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCandidateAdded  EventType = "CandidateAdded"
	EventVoterRegistered EventType = "VoterRegistered"
	EventElectionStarted EventType = "ElectionStarted"
	EventVoteCasted      EventType = "VoteCasted"
	EventElectionEnded   EventType = "ElectionEnded"
)

// Event records one accepted mutation. Seq starts at 1 and has no gaps.
type Event struct {
	Seq           uint64
	ID            string
	Type          EventType
	OccurredAt    time.Time
	CandidateID   uint64   // CandidateAdded, VoteCasted
	CandidateName string   // CandidateAdded
	Voter         Identity // VoterRegistered, VoteCasted
}

// Journal durably records an event before it is applied. A failed Append
// rejects the operation and leaves the election unchanged.
type Journal interface {
	Append(ctx context.Context, evt Event) error
}

type JournalFunc func(ctx context.Context, evt Event) error

func (f JournalFunc) Append(ctx context.Context, evt Event) error { return f(ctx, evt) }

// Sink is notified of every accepted event, in acceptance order.
// Publish runs while the election lock is held, so it must not call back
// into the election.
type Sink interface {
	Publish(evt Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Publish(evt Event) { f(evt) }

func newEvent(seq uint64, eventType EventType, now time.Time) Event {
	return Event{
		Seq:        seq,
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: now.UTC(),
	}
}
