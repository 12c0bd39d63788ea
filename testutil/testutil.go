// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
)

// TestAdmin is the election admin in GetTestConfig
const TestAdmin = "admin"

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, filepath.Join(t.TempDir(), "election.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  string(db.SQLite),
		DatabaseURL:   ":memory:",
		ElectionName:  "Test Election",
		ElectionAdmin: TestAdmin,
		CallerKeySalt: "test-caller-salt",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// QuietLogger discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestElection creates an election journaled to a fresh database and
// returns both.
func NewTestElection(t *testing.T, cfg cliparse.Config, opts ...election.Option) (*election.Election, *db.Journal) {
	t.Helper()

	journal := db.NewJournal(SetupTestDB(t), db.SQLite)
	if _, err := journal.EnsureMeta(context.Background(), cfg.ElectionName, election.Identity(cfg.ElectionAdmin)); err != nil {
		t.Fatalf("Failed to write election meta: %v", err)
	}

	opts = append([]election.Option{
		election.WithName(cfg.ElectionName),
		election.WithJournal(journal),
		election.WithLogger(QuietLogger()),
	}, opts...)
	e, err := election.New(election.Identity(cfg.ElectionAdmin), opts...)
	if err != nil {
		t.Fatalf("Failed to create election: %v", err)
	}
	return e, journal
}

// SeedElection adds the candidates and registers the voters, optionally
// starting the election.
func SeedElection(t *testing.T, e *election.Election, candidates, voters []string, start bool) {
	t.Helper()

	ctx := context.Background()
	admin := election.Caller{Identity: e.Admin()}
	for _, name := range candidates {
		if _, err := e.AddCandidate(ctx, admin, name); err != nil {
			t.Fatalf("Failed to add candidate %q: %v", name, err)
		}
	}
	for _, v := range voters {
		if _, err := e.RegisterVoter(ctx, admin, election.Identity(v)); err != nil {
			t.Fatalf("Failed to register voter %q: %v", v, err)
		}
	}
	if start {
		if err := e.StartElection(ctx, admin); err != nil {
			t.Fatalf("Failed to start election: %v", err)
		}
	}
}

// CallerHeaders returns valid credential headers for identity
func CallerHeaders(cfg cliparse.Config, identity string) map[string]string {
	return map[string]string{
		middleware.HeaderCallerIdentity: identity,
		middleware.HeaderCallerKey:      auth.GenerateCallerKey(identity, cfg.CallerKeySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
