// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/logging"
	"github.com/danielhkuo/quickly-elect/metrics"
	"github.com/danielhkuo/quickly-elect/router"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if _, err := logging.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		slog.Error("invalid logging config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg cliparse.Config) error {
	ctx := context.Background()

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return err
	}
	dbConn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", dialect)

	journal := db.NewJournal(dbConn, dialect)
	meta, err := journal.EnsureMeta(ctx, cfg.ElectionName, election.Identity(cfg.ElectionAdmin))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e, err := election.New(meta.Admin,
		election.WithName(meta.Name),
		election.WithJournal(journal),
		election.WithSink(metrics.New(registry)),
		election.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}

	// Rebuild state from the journal
	events, err := journal.Load(ctx)
	if err != nil {
		return err
	}
	if err := e.Restore(events); err != nil {
		return fmt.Errorf("journal replay failed: %w", err)
	}
	if len(events) == 0 {
		if err := seed(ctx, e, cfg.Seed); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	info := e.Info()
	slog.Info("Election ready",
		"name", info.Name,
		"phase", info.Phase.String(),
		"events", humanize.Comma(int64(info.Seq)),
		"candidates", info.CandidateCount,
		"voters", info.VoterCount,
		"votes", humanize.Comma(int64(info.TotalVotes)),
		"created", humanize.Time(meta.CreatedAt),
	)
	slog.Info("Admin credentials",
		"identity", meta.Admin,
		"key", auth.GenerateCallerKey(string(meta.Admin), cfg.CallerKeySalt),
	)

	addr := ":" + strconv.Itoa(cfg.Port)
	if cfg.DeploymentInfo != "" {
		di := newDeploymentInfo(info, meta, dialect, addr, time.Now())
		if err := writeDeploymentInfo(cfg.DeploymentInfo, di); err != nil {
			slog.Warn("failed to write deployment info", "path", cfg.DeploymentInfo, "error", err)
		} else {
			slog.Info("Deployment info saved", "path", cfg.DeploymentInfo)
		}
	}

	// Create server
	server := http.Server{
		Handler: router.NewRouter(e, journal, registry, cfg),
		Addr:    addr,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	slog.Info("Server closed")
	return nil
}

// seed creates the configured candidates and voters through the regular
// admin operations, so they are journaled like any other change.
func seed(ctx context.Context, e *election.Election, s cliparse.Seed) error {
	admin := election.Caller{Identity: e.Admin()}
	for _, name := range s.Candidates {
		if _, err := e.AddCandidate(ctx, admin, name); err != nil {
			return fmt.Errorf("candidate %q: %w", name, err)
		}
	}
	for _, addr := range s.Voters {
		if _, err := e.RegisterVoter(ctx, admin, election.Identity(addr)); err != nil {
			return fmt.Errorf("voter %q: %w", addr, err)
		}
	}
	if n := len(s.Candidates) + len(s.Voters); n > 0 {
		slog.Info("Election seeded", "candidates", len(s.Candidates), "voters", len(s.Voters))
	}
	return nil
}

type deploymentInfo struct {
	ElectionName string    `json:"electionName"`
	Admin        string    `json:"admin"`
	Phase        string    `json:"phase"`
	Database     string    `json:"database"`
	ListenAddr   string    `json:"listenAddr"`
	Candidates   uint64    `json:"candidates"`
	Voters       uint64    `json:"voters"`
	LastEventSeq uint64    `json:"lastEventSeq"`
	CreatedAt    time.Time `json:"createdAt"`
	Timestamp    time.Time `json:"timestamp"`
}

func newDeploymentInfo(info election.Info, meta db.Meta, dialect db.Dialect, addr string, now time.Time) deploymentInfo {
	return deploymentInfo{
		ElectionName: info.Name,
		Admin:        string(info.Admin),
		Phase:        info.Phase.String(),
		Database:     string(dialect),
		ListenAddr:   addr,
		Candidates:   info.CandidateCount,
		Voters:       info.VoterCount,
		LastEventSeq: info.Seq,
		CreatedAt:    meta.CreatedAt,
		Timestamp:    now.UTC(),
	}
}

func writeDeploymentInfo(path string, di deploymentInfo) error {
	buf, err := json.MarshalIndent(di, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(buf, '\n'), 0o644)
}
