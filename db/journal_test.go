// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-elect/election"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(SQLite, filepath.Join(t.TempDir(), "election.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	return conn
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := openTestDB(t)
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema() error = %v", err)
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"", SQLite, false},
		{"sqlite", SQLite, false},
		{"SQLite3", SQLite, false},
		{"postgres", Postgres, false},
		{"postgresql", Postgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = $1 AND y = $2 LIMIT $10`
	if got := rebind(Postgres, q); got != q {
		t.Errorf("rebind(postgres) changed query: %s", got)
	}
	want := `SELECT a FROM t WHERE x = ? AND y = ? LIMIT ?`
	if got := rebind(SQLite, q); got != want {
		t.Errorf("rebind(sqlite) = %s, want %s", got, want)
	}
}

func TestEnsureMeta(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(openTestDB(t), SQLite)

	first, err := j.EnsureMeta(ctx, "Board", "admin")
	if err != nil {
		t.Fatalf("EnsureMeta() error = %v", err)
	}
	if first.Name != "Board" || first.Admin != "admin" {
		t.Errorf("EnsureMeta() = %+v", first)
	}

	again, err := j.EnsureMeta(ctx, "Renamed", "admin")
	if err != nil {
		t.Fatalf("second EnsureMeta() error = %v", err)
	}
	if again.Name != "Board" {
		t.Errorf("stored name = %q, want Board", again.Name)
	}

	if _, err := j.EnsureMeta(ctx, "Board", "someone-else"); !errors.Is(err, ErrAdminMismatch) {
		t.Errorf("EnsureMeta(other admin) error = %v, want ErrAdminMismatch", err)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(openTestDB(t), SQLite)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	admin := election.Caller{Identity: "admin"}
	e, err := election.New(admin.Identity, election.WithJournal(j), election.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Alice", "Bob"} {
		if _, err := e.AddCandidate(ctx, admin, name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := e.RegisterVoter(ctx, admin, "voter1"); err != nil {
		t.Fatal(err)
	}
	if err := e.StartElection(ctx, admin); err != nil {
		t.Fatal(err)
	}
	if err := e.Vote(ctx, election.Caller{Identity: "voter1"}, 2); err != nil {
		t.Fatal(err)
	}
	if err := e.EndElection(ctx, admin); err != nil {
		t.Fatal(err)
	}

	events, err := j.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("Load() returned %d events, want 6", len(events))
	}
	if events[1].CandidateName != "Bob" || events[1].CandidateID != 2 {
		t.Errorf("event 2 = %+v", events[1])
	}
	if events[4].Type != election.EventVoteCasted || events[4].Voter != "voter1" || events[4].CandidateID != 2 {
		t.Errorf("event 5 = %+v", events[4])
	}
	if events[5].OccurredAt.IsZero() || events[5].OccurredAt.Location() != time.UTC {
		t.Errorf("event 6 OccurredAt = %v", events[5].OccurredAt)
	}

	restored, err := election.New(admin.Identity, election.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if err := restored.Restore(events); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	w, err := restored.GetWinner()
	if err != nil || w.ID != 2 || w.VoteCount != 1 {
		t.Errorf("restored GetWinner() = %+v, %v", w, err)
	}
}

func TestJournalAppendRejectsDuplicateSeq(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(openTestDB(t), SQLite)

	evt := election.Event{Seq: 1, ID: "a", Type: election.EventElectionStarted, OccurredAt: time.Now()}
	if err := j.Append(ctx, evt); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	evt.ID = "b"
	if err := j.Append(ctx, evt); err == nil {
		t.Fatal("Append() accepted a duplicate seq")
	}
}

func TestJournalList(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(openTestDB(t), SQLite)

	for i := uint64(1); i <= 5; i++ {
		evt := election.Event{
			Seq:         i,
			ID:          string(rune('a' + i)),
			Type:        election.EventCandidateAdded,
			CandidateID: i,
			OccurredAt:  time.Now(),
		}
		if err := j.Append(ctx, evt); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		after    uint64
		limit    int
		wantSeqs []uint64
	}{
		{"all", 0, 0, []uint64{1, 2, 3, 4, 5}},
		{"after", 3, 0, []uint64{4, 5}},
		{"limit", 0, 2, []uint64{1, 2}},
		{"after and limit", 1, 2, []uint64{2, 3}},
		{"past end", 5, 10, []uint64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.List(ctx, tt.after, tt.limit)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.wantSeqs) {
				t.Fatalf("List() returned %d events, want %d", len(got), len(tt.wantSeqs))
			}
			for i, seq := range tt.wantSeqs {
				if got[i].Seq != seq {
					t.Errorf("List()[%d].Seq = %d, want %d", i, got[i].Seq, seq)
				}
			}
		})
	}
}
