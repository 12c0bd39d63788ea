// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/handlers"
	"github.com/danielhkuo/quickly-elect/metrics"
	"github.com/danielhkuo/quickly-elect/middleware"
)

func NewRouter(e *election.Election, events handlers.EventLister, gatherer prometheus.Gatherer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	h := handlers.NewElectionHandler(e, events, cfg)
	caller := func(next middleware.CallerHandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireCaller(cfg.CallerKeySalt, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler(gatherer))

	// Admin operations (require X-Caller-Identity / X-Caller-Key of the admin)
	mux.HandleFunc("POST /election/candidates", caller(h.AddCandidate))
	mux.HandleFunc("POST /election/voters", caller(h.RegisterVoter))
	mux.HandleFunc("POST /election/start", caller(h.StartElection))
	mux.HandleFunc("POST /election/end", caller(h.EndElection))

	// Voting (registered voters)
	mux.HandleFunc("POST /election/votes", caller(h.Vote))

	// Reads (public)
	mux.HandleFunc("GET /election", middleware.WithLogging(h.GetElection))
	mux.HandleFunc("GET /election/candidates", middleware.WithLogging(h.ListCandidates))
	mux.HandleFunc("GET /election/candidates/{id}", middleware.WithLogging(h.GetCandidate))
	mux.HandleFunc("GET /election/voters/{address}", middleware.WithLogging(h.GetVoter))
	mux.HandleFunc("GET /election/winner", middleware.WithLogging(h.GetWinner))
	mux.HandleFunc("GET /election/top", middleware.WithLogging(h.GetTop))
	mux.HandleFunc("GET /election/events", middleware.WithLogging(h.ListEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("quickly-elect API v1"))
	})

	return mux
}
