// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

// GetElection handles GET /election
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, toElection(h.election.Info()))
}

// ListCandidates handles GET /election/candidates
func (h *ElectionHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		Candidates: toCandidates(h.election.Candidates()),
	})
}

// GetCandidate handles GET /election/candidates/{id}
func (h *ElectionHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id must be a positive integer")
		return
	}

	c, err := h.election.GetCandidate(id)
	if err != nil {
		writeElectionError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toCandidate(c))
}

// GetVoter handles GET /election/voters/{address}
func (h *ElectionHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address is required")
		return
	}

	v, err := h.election.GetVoter(election.Identity(address))
	if err != nil {
		writeElectionError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toVoter(v))
}

// GetWinner handles GET /election/winner (ended only)
func (h *ElectionHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.election.GetWinner()
	if errors.Is(err, election.ErrNoCandidates) {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeElectionError(w, r, err)
		return
	}

	info := h.election.Info()
	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		Winner:     toCandidate(winner),
		TotalVotes: info.TotalVotes,
		Summary:    winnerSummary(winner, info, time.Now()),
	})
}

// winnerSummary renders e.g. "Alice won with 2 of 3 votes (67%), ended 5 minutes ago".
func winnerSummary(winner election.Candidate, info election.Info, now time.Time) string {
	var share float64
	if info.TotalVotes > 0 {
		share = float64(winner.VoteCount) / float64(info.TotalVotes) * 100
	}
	s := fmt.Sprintf("%s won with %s of %s %s (%s%%)",
		winner.Name,
		humanize.Comma(int64(winner.VoteCount)),
		humanize.Comma(int64(info.TotalVotes)),
		plural(info.TotalVotes, "vote", "votes"),
		humanize.FormatFloat("#,###.", share),
	)
	if info.EndedAt != nil {
		s += ", ended " + humanize.RelTime(*info.EndedAt, now, "ago", "from now")
	}
	return s
}

func plural(n uint64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// GetTop handles GET /election/top?n=N
// Without n every candidate is returned, ranked.
func (h *ElectionHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	n := int(h.election.CandidateCount())
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "n must be an integer")
			return
		}
		n = parsed
	}

	middleware.JSONResponse(w, http.StatusOK, models.TopResponse{
		N:          n,
		Candidates: toCandidates(h.election.GetTopNCandidates(n)),
	})
}

// ListEvents handles GET /election/events?after=S&limit=L
func (h *ElectionHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var after uint64
	if raw := q.Get("after"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "after must be a non-negative integer")
			return
		}
		after = v
	}

	limit := defaultEventLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(v, maxEventLimit)
	}

	events, err := h.events.List(r.Context(), after, limit)
	if err != nil {
		slog.Error("failed to list events", "after", after, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.EventsResponse{
		Events:    make([]models.Event, 0, len(events)),
		NextAfter: after,
	}
	for _, evt := range events {
		resp.Events = append(resp.Events, toEvent(evt))
		resp.NextAfter = evt.Seq
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
