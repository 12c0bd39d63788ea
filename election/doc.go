// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the single-election state machine.

# Lifecycle

An election moves through three phases, forward only:

	not_started → started → ended

Candidates and voters are added by the admin while not_started. Registered
voters cast exactly one vote while started. The winner is readable once ended.

	e, _ := election.New("admin", election.WithName("Board 2025"))
	admin := election.Caller{Identity: "admin"}
	alice, _ := e.AddCandidate(ctx, admin, "Alice")
	e.RegisterVoter(ctx, admin, "voter1")
	e.StartElection(ctx, admin)
	e.Vote(ctx, election.Caller{Identity: "voter1"}, alice.ID)
	e.EndElection(ctx, admin)
	winner, _ := e.GetWinner()

# Events

Every accepted mutation produces one Event with a gap-free sequence number.
A Journal, when configured, receives the event before the state changes; if
it fails, the call fails and nothing changes. Sinks are told afterwards.
Restore rebuilds an election from journaled events.

# Errors

Failures wrap one of the sentinel errors (ErrUnauthorized, ErrInvalidPhase,
ErrAlreadyVoted, ...) and can be matched with errors.Is. A failed call never
mutates state.
*/
package election
