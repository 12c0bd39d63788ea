// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Elect API server.

Quickly Elect runs a single election: an admin registers candidates and
voters, opens the vote, closes it, and anyone can read the winner. Every
change is journaled, so a restarted server resumes where it stopped.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ELECTION_ADMIN=admin CALLER_KEY_SALT=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin admin -key-salt secret

A YAML file (-c or ELECTION_CONFIG) can carry the same settings plus an
initial list of candidates and voters. A .env file in the working directory
is loaded if present.

# Configuration

Required settings:

  - ELECTION_ADMIN (-admin): identity of the election admin
  - CALLER_KEY_SALT (-key-salt): secret for caller key HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): database path or connection string (default: election.db)
  - ELECTION_NAME (-name): display name, fixed on first start
  - DEPLOYMENT_INFO (-deployment-info): write a JSON summary on startup
  - LOG_LEVEL, LOG_FORMAT (-log-level, -log-format): slog settings

The admin caller key is logged at startup.

# Architecture

  - election: the state machine and its event model
  - db: schema and the event journal (SQLite or PostgreSQL)
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, caller authentication, JSON helpers
  - metrics: Prometheus collector fed by election events
  - models: request/response types
  - auth: caller key generation and validation
  - cliparse: configuration parsing
  - logging: slog setup

See package documentation for each component.
*/
package main
