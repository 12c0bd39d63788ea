// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Election is the single-election state machine. All methods are safe for
// concurrent use; each operation is applied atomically against the whole state.
type Election struct {
	mu sync.RWMutex

	name       string
	admin      Identity
	phase      Phase
	candidates []Candidate // candidates[i].ID == i+1
	voters     map[Identity]*Voter
	totalVotes uint64
	startedAt  *time.Time
	endedAt    *time.Time
	seq        uint64

	journal Journal
	sinks   []Sink
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Election)

func WithName(name string) Option {
	return func(e *Election) { e.name = strings.TrimSpace(name) }
}

// WithJournal makes every mutation durable before it is applied.
func WithJournal(j Journal) Option {
	return func(e *Election) { e.journal = j }
}

func WithSink(s Sink) Option {
	return func(e *Election) {
		if s != nil {
			e.sinks = append(e.sinks, s)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Election) { e.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(e *Election) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an election owned by admin. The admin cannot be changed later.
func New(admin Identity, opts ...Option) (*Election, error) {
	admin = Identity(strings.TrimSpace(string(admin)))
	if admin == "" {
		return nil, fmt.Errorf("%w: admin identity is required", ErrInvalidAddress)
	}
	e := &Election{
		admin:  admin,
		phase:  PhaseNotStarted,
		voters: make(map[Identity]*Voter),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// AddCandidate registers a new candidate while the election has not started.
func (e *Election) AddCandidate(ctx context.Context, caller Caller, name string) (Candidate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return Candidate{}, err
	}
	evt := newEvent(e.seq+1, EventCandidateAdded, e.now())
	evt.CandidateID = uint64(len(e.candidates)) + 1
	evt.CandidateName = strings.TrimSpace(name)
	if err := e.commit(ctx, evt); err != nil {
		return Candidate{}, err
	}

	e.logger.Info("candidate added",
		"candidate_id", evt.CandidateID,
		"name", evt.CandidateName,
		"seq", evt.Seq,
	)
	return e.candidates[evt.CandidateID-1], nil
}

// RegisterVoter allows address to cast one vote once the election starts.
func (e *Election) RegisterVoter(ctx context.Context, caller Caller, address Identity) (Voter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return Voter{}, err
	}
	evt := newEvent(e.seq+1, EventVoterRegistered, e.now())
	evt.Voter = Identity(strings.TrimSpace(string(address)))
	if err := e.commit(ctx, evt); err != nil {
		return Voter{}, err
	}

	e.logger.Info("voter registered", "voter", evt.Voter, "seq", evt.Seq)
	return *e.voters[evt.Voter], nil
}

// StartElection opens voting. It requires at least one candidate.
func (e *Election) StartElection(ctx context.Context, caller Caller) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	evt := newEvent(e.seq+1, EventElectionStarted, e.now())
	if err := e.commit(ctx, evt); err != nil {
		return err
	}

	e.logger.Info("election started",
		"name", e.name,
		"candidates", len(e.candidates),
		"voters", len(e.voters),
		"seq", evt.Seq,
	)
	return nil
}

// Vote records the caller's single vote for candidateID.
func (e *Election) Vote(ctx context.Context, caller Caller, candidateID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	evt := newEvent(e.seq+1, EventVoteCasted, e.now())
	evt.Voter = caller.Identity
	evt.CandidateID = candidateID
	if err := e.commit(ctx, evt); err != nil {
		return err
	}

	e.logger.Info("vote cast",
		"voter", evt.Voter,
		"candidate_id", evt.CandidateID,
		"total_votes", e.totalVotes,
		"seq", evt.Seq,
	)
	return nil
}

// EndElection closes voting for good.
func (e *Election) EndElection(ctx context.Context, caller Caller) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	evt := newEvent(e.seq+1, EventElectionEnded, e.now())
	if err := e.commit(ctx, evt); err != nil {
		return err
	}

	e.logger.Info("election ended",
		"name", e.name,
		"total_votes", e.totalVotes,
		"seq", evt.Seq,
	)
	return nil
}

// Restore replays previously journaled events on top of the current state.
// Events are checked exactly like live operations but are not journaled
// again. Sinks are notified so derived views catch up.
func (e *Election) Restore(events []Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, evt := range events {
		if err := e.verify(evt); err != nil {
			return fmt.Errorf("replay event %d (%s): %w", evt.Seq, evt.Type, err)
		}
		e.mutate(evt)
		e.publish(evt)
	}
	if len(events) > 0 {
		e.logger.Info("election restored",
			"events", len(events),
			"phase", e.phase.String(),
			"total_votes", e.totalVotes,
		)
	}
	return nil
}

func (e *Election) requireAdmin(caller Caller) error {
	if caller.Identity != e.admin {
		return fmt.Errorf("%w: %q is not the election admin", ErrUnauthorized, caller.Identity)
	}
	return nil
}

// commit is verify -> journal -> mutate -> publish. Callers hold the write lock.
func (e *Election) commit(ctx context.Context, evt Event) error {
	if err := e.verify(evt); err != nil {
		return err
	}
	if e.journal != nil {
		if err := e.journal.Append(ctx, evt); err != nil {
			e.logger.Error("failed to journal event",
				"type", string(evt.Type),
				"seq", evt.Seq,
				"error", err,
			)
			return fmt.Errorf("journal %s event: %w", evt.Type, err)
		}
	}
	e.mutate(evt)
	e.publish(evt)
	return nil
}

// verify reports whether evt is a valid next transition. The order of checks
// defines which error a caller sees when several rules are broken.
func (e *Election) verify(evt Event) error {
	if evt.Seq != e.seq+1 {
		return fmt.Errorf("out of order event: got seq %d, want %d", evt.Seq, e.seq+1)
	}

	switch evt.Type {
	case EventCandidateAdded:
		if e.phase != PhaseNotStarted {
			return fmt.Errorf("%w: candidates can only be added before the election starts", ErrInvalidPhase)
		}
		if strings.TrimSpace(evt.CandidateName) == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
		}
		if evt.CandidateID != uint64(len(e.candidates))+1 {
			return fmt.Errorf("%w: expected id %d, got %d", ErrInvalidCandidate, len(e.candidates)+1, evt.CandidateID)
		}

	case EventVoterRegistered:
		if e.phase != PhaseNotStarted {
			return fmt.Errorf("%w: voters can only be registered before the election starts", ErrInvalidPhase)
		}
		if strings.TrimSpace(string(evt.Voter)) == "" {
			return fmt.Errorf("%w: address must not be empty", ErrInvalidAddress)
		}
		if _, ok := e.voters[evt.Voter]; ok {
			return fmt.Errorf("%w: %q", ErrAlreadyRegistered, evt.Voter)
		}

	case EventElectionStarted:
		if e.phase != PhaseNotStarted {
			return fmt.Errorf("%w: election is %s", ErrInvalidPhase, e.phase)
		}
		if len(e.candidates) == 0 {
			return fmt.Errorf("%w: add a candidate before starting", ErrNoCandidates)
		}

	case EventVoteCasted:
		if e.phase != PhaseStarted {
			return fmt.Errorf("%w: election is %s", ErrInvalidPhase, e.phase)
		}
		voter, ok := e.voters[evt.Voter]
		if !ok {
			return fmt.Errorf("%w: %q", ErrNotRegistered, evt.Voter)
		}
		if voter.HasVoted {
			return fmt.Errorf("%w: %q", ErrAlreadyVoted, evt.Voter)
		}
		if evt.CandidateID == 0 || evt.CandidateID > uint64(len(e.candidates)) {
			return fmt.Errorf("%w: no candidate with id %d", ErrInvalidCandidate, evt.CandidateID)
		}

	case EventElectionEnded:
		if e.phase != PhaseStarted {
			return fmt.Errorf("%w: election is %s", ErrInvalidPhase, e.phase)
		}

	default:
		return fmt.Errorf("unknown event type %q", evt.Type)
	}
	return nil
}

// mutate applies a verified event. It is the only place state changes.
func (e *Election) mutate(evt Event) {
	switch evt.Type {
	case EventCandidateAdded:
		e.candidates = append(e.candidates, Candidate{
			ID:   evt.CandidateID,
			Name: strings.TrimSpace(evt.CandidateName),
		})
	case EventVoterRegistered:
		e.voters[evt.Voter] = &Voter{
			Address:      evt.Voter,
			IsRegistered: true,
		}
	case EventElectionStarted:
		at := evt.OccurredAt
		e.startedAt = &at
		e.phase = PhaseStarted
	case EventVoteCasted:
		voter := e.voters[evt.Voter]
		voter.HasVoted = true
		voter.VotedCandidateID = evt.CandidateID
		e.candidates[evt.CandidateID-1].VoteCount++
		e.totalVotes++
	case EventElectionEnded:
		at := evt.OccurredAt
		e.endedAt = &at
		e.phase = PhaseEnded
	}
	e.seq = evt.Seq
}

func (e *Election) publish(evt Event) {
	for _, sink := range e.sinks {
		sink.Publish(evt)
	}
}

// GetCandidate returns a copy of the candidate with the given id.
func (e *Election) GetCandidate(id uint64) (Candidate, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if id == 0 || id > uint64(len(e.candidates)) {
		return Candidate{}, fmt.Errorf("%w: candidate %d", ErrNotFound, id)
	}
	return e.candidates[id-1], nil
}

// GetVoter returns a copy of a registered voter's record.
func (e *Election) GetVoter(address Identity) (Voter, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	voter, ok := e.voters[address]
	if !ok {
		return Voter{}, fmt.Errorf("%w: voter %q", ErrNotFound, address)
	}
	return *voter, nil
}

// GetWinner returns the candidate with the most votes once the election has
// ended. Ties go to the lowest candidate id.
func (e *Election) GetWinner() (Candidate, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.phase != PhaseEnded {
		return Candidate{}, fmt.Errorf("%w: winner is only available after the election ends", ErrInvalidPhase)
	}
	if len(e.candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	winner := e.candidates[0]
	for _, c := range e.candidates[1:] {
		if c.VoteCount > winner.VoteCount {
			winner = c
		}
	}
	return winner, nil
}

// GetTopNCandidates ranks candidates by votes (descending, then id ascending)
// and returns at most n of them. n <= 0 yields an empty slice.
func (e *Election) GetTopNCandidates(n int) []Candidate {
	e.mu.RLock()
	ranked := make([]Candidate, len(e.candidates))
	copy(ranked, e.candidates)
	e.mu.RUnlock()

	if n <= 0 {
		return []Candidate{}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].VoteCount == ranked[j].VoteCount {
			return ranked[i].ID < ranked[j].ID
		}
		return ranked[i].VoteCount > ranked[j].VoteCount
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Candidates returns every candidate in id order.
func (e *Election) Candidates() []Candidate {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Candidate, len(e.candidates))
	copy(out, e.candidates)
	return out
}

func (e *Election) Info() Info {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Info{
		Name:           e.name,
		Admin:          e.admin,
		Phase:          e.phase,
		CandidateCount: uint64(len(e.candidates)),
		VoterCount:     uint64(len(e.voters)),
		TotalVotes:     e.totalVotes,
		StartedAt:      copyTime(e.startedAt),
		EndedAt:        copyTime(e.endedAt),
		Seq:            e.seq,
	}
}

func (e *Election) Name() string    { return e.name }
func (e *Election) Admin() Identity { return e.admin }

func (e *Election) Phase() Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phase
}

func (e *Election) CandidateCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint64(len(e.candidates))
}

func (e *Election) TotalVotes() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalVotes
}

// Seq is the sequence number of the last accepted event.
func (e *Election) Seq() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
