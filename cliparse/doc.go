// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: PostgreSQL connection string, or SQLite file path (default: election.db)
  - ElectionName: Display name of the election
  - ElectionAdmin: Identity allowed to administer the election (required)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - DeploymentInfo: Where to write the deployment info JSON (empty disables)
  - LogLevel, LogFormat: debug|info|warn|error and text|json
  - Seed: Candidates and voters to create on first start

# CLI Flags

	-c                 YAML config file
	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-name              Election name
	-admin             Election admin identity
	-key-salt          Caller key salt
	-deployment-info   Deployment info path
	-log-level         Log level
	-log-format        Log format

# Environment Variables

Flags fall back to environment variables:

	ELECTION_CONFIG → -c
	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ELECTION_NAME   → -name
	ELECTION_ADMIN  → -admin
	CALLER_KEY_SALT → -key-salt
	DEPLOYMENT_INFO → -deployment-info
	LOG_LEVEL       → -log-level
	LOG_FORMAT      → -log-format

main loads a .env file first, so these may also live there.

# Config File

Values missing from flags and environment are read from the YAML file:

	port: 3318
	database_type: sqlite
	database_url: data/election.db
	election:
	  name: Student Council
	  admin: admin
	  candidates: [Alice, Bob]
	  voters: [voter1, voter2]
	log:
	  level: info

The candidates and voters lists are only read from the file.

# Validation

ParseFlags returns an error if required values are missing:

  - ELECTION_ADMIN must be provided
  - CALLER_KEY_SALT must be provided
  - DATABASE_URL must be provided for postgres
*/
package cliparse
