// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are stored as RFC 3339 text so both backends round-trip them
// identically.
const schema = `
-- Election header (single row)
CREATE TABLE IF NOT EXISTS election_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    admin TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Accepted events, one per mutation
CREATE TABLE IF NOT EXISTS election_event (
    seq BIGINT PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL CHECK (type IN ('CandidateAdded', 'VoterRegistered', 'ElectionStarted', 'VoteCasted', 'ElectionEnded')),
    candidate_id BIGINT NOT NULL DEFAULT 0,
    candidate_name TEXT NOT NULL DEFAULT '',
    voter TEXT NOT NULL DEFAULT '',
    occurred_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_election_event_type ON election_event(type);
CREATE INDEX IF NOT EXISTS idx_election_event_voter ON election_event(voter);
`
