// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect accepts the DATABASE_TYPE values understood by the server.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database type %q (want sqlite or postgres)", s)
	}
}

// Open connects to the database and verifies the connection.
// For SQLite, url is a file path (or ":memory:"); WAL mode and a busy
// timeout are enabled.
func Open(dialect Dialect, url string) (*sql.DB, error) {
	switch dialect {
	case Postgres:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := conn.Ping(); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return conn, nil

	case SQLite:
		if url != ":memory:" && !strings.HasPrefix(url, "file:") {
			if err := os.MkdirAll(filepath.Dir(url), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// One writer at a time; the election serializes appends anyway.
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA journal_mode = WAL`); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set journal mode: %w", err)
		}
		if _, err := conn.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set busy timeout: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}
}

// rebind rewrites $N placeholders to ? for SQLite.
func rebind(dialect Dialect, query string) string {
	if dialect != SQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
