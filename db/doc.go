// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and the event journal.

# Connecting

Open supports PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):

	dialect, _ := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)

SQLite connections run in WAL mode with a 5s busy timeout.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election_meta: the single election header (name, admin, created_at)
  - election_event: one row per accepted mutation, keyed by seq

# Journal

Journal implements election.Journal. The election appends each event before
applying it, so the table is a complete, gap-free history:

	j := db.NewJournal(conn, dialect)
	meta, err := j.EnsureMeta(ctx, cfg.ElectionName, cfg.ElectionAdmin)
	events, err := j.Load(ctx)
	e, _ := election.New(meta.Admin, election.WithJournal(j))
	err = e.Restore(events)
*/
package db
