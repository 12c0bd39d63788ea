// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-elect/election"
)

// ErrAdminMismatch is returned by EnsureMeta when the database already
// belongs to an election with a different admin.
var ErrAdminMismatch = errors.New("database belongs to a different election admin")

// Journal is the SQL-backed election.Journal.
type Journal struct {
	db      *sql.DB
	dialect Dialect
}

func NewJournal(db *sql.DB, dialect Dialect) *Journal {
	return &Journal{db: db, dialect: dialect}
}

// Meta is the stored election header.
type Meta struct {
	Name      string
	Admin     election.Identity
	CreatedAt time.Time
}

// EnsureMeta records the election header on first start. On later starts it
// returns the stored header and fails if admin differs from it.
func (j *Journal) EnsureMeta(ctx context.Context, name string, admin election.Identity) (Meta, error) {
	var (
		meta      Meta
		createdAt string
	)
	err := j.db.QueryRowContext(ctx,
		j.q(`SELECT name, admin, created_at FROM election_meta WHERE id = 1`),
	).Scan(&meta.Name, &meta.Admin, &createdAt)

	if err == sql.ErrNoRows {
		meta = Meta{Name: name, Admin: admin, CreatedAt: time.Now().UTC()}
		_, err = j.db.ExecContext(ctx,
			j.q(`INSERT INTO election_meta (id, name, admin, created_at) VALUES (1, $1, $2, $3)`),
			meta.Name, string(meta.Admin), formatTime(meta.CreatedAt),
		)
		if err != nil {
			return Meta{}, fmt.Errorf("failed to insert election meta: %w", err)
		}
		return meta, nil
	}
	if err != nil {
		return Meta{}, fmt.Errorf("failed to read election meta: %w", err)
	}

	if meta.Admin != admin {
		return Meta{}, fmt.Errorf("%w: stored %q, configured %q", ErrAdminMismatch, meta.Admin, admin)
	}
	if meta.CreatedAt, err = parseTime(createdAt); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// Append writes one event. A duplicate seq fails on the primary key.
func (j *Journal) Append(ctx context.Context, evt election.Event) error {
	_, err := j.db.ExecContext(ctx,
		j.q(`INSERT INTO election_event (seq, id, type, candidate_id, candidate_name, voter, occurred_at)
		     VALUES ($1, $2, $3, $4, $5, $6, $7)`),
		int64(evt.Seq), evt.ID, string(evt.Type), int64(evt.CandidateID),
		evt.CandidateName, string(evt.Voter), formatTime(evt.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append event %d: %w", evt.Seq, err)
	}
	return nil
}

// Load returns every event in seq order.
func (j *Journal) Load(ctx context.Context) ([]election.Event, error) {
	return j.List(ctx, 0, 0)
}

// List returns events with seq > after in seq order. limit <= 0 means no limit.
func (j *Journal) List(ctx context.Context, after uint64, limit int) ([]election.Event, error) {
	query := `SELECT seq, id, type, candidate_id, candidate_name, voter, occurred_at
	          FROM election_event WHERE seq > $1 ORDER BY seq`
	args := []any{int64(after)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, j.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []election.Event{}
	for rows.Next() {
		var (
			evt         election.Event
			seq, candID int64
			typ, voter  string
			occurredAt  string
		)
		if err := rows.Scan(&seq, &evt.ID, &typ, &candID, &evt.CandidateName, &voter, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		evt.Seq = uint64(seq)
		evt.Type = election.EventType(typ)
		evt.CandidateID = uint64(candID)
		evt.Voter = election.Identity(voter)
		if evt.OccurredAt, err = parseTime(occurredAt); err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

func (j *Journal) q(query string) string {
	return rebind(j.dialect, query)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}
