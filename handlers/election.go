// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
)

// EventLister reads the journaled event feed.
type EventLister interface {
	List(ctx context.Context, after uint64, limit int) ([]election.Event, error)
}

type ElectionHandler struct {
	election *election.Election
	events   EventLister
	cfg      cliparse.Config
}

func NewElectionHandler(e *election.Election, events EventLister, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{election: e, events: events, cfg: cfg}
}

// AddCandidate handles POST /election/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request, caller election.Caller) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.election.AddCandidate(r.Context(), caller, req.Name)
	if err != nil {
		writeElectionError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		Candidate: toCandidate(c),
	})
}

// RegisterVoter handles POST /election/voters
// The response carries the key the voter must present when voting.
func (h *ElectionHandler) RegisterVoter(w http.ResponseWriter, r *http.Request, caller election.Caller) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	address := election.Identity(strings.TrimSpace(req.Address))
	v, err := h.election.RegisterVoter(r.Context(), caller, address)
	if err != nil {
		writeElectionError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		Voter:     toVoter(v),
		CallerKey: auth.GenerateCallerKey(string(v.Address), h.cfg.CallerKeySalt),
	})
}

// StartElection handles POST /election/start
func (h *ElectionHandler) StartElection(w http.ResponseWriter, r *http.Request, caller election.Caller) {
	if err := h.election.StartElection(r.Context(), caller); err != nil {
		writeElectionError(w, r, err)
		return
	}
	h.writePhase(w, func(info election.Info) *time.Time { return info.StartedAt })
}

// EndElection handles POST /election/end
func (h *ElectionHandler) EndElection(w http.ResponseWriter, r *http.Request, caller election.Caller) {
	if err := h.election.EndElection(r.Context(), caller); err != nil {
		writeElectionError(w, r, err)
		return
	}
	h.writePhase(w, func(info election.Info) *time.Time { return info.EndedAt })
}

func (h *ElectionHandler) writePhase(w http.ResponseWriter, at func(election.Info) *time.Time) {
	info := h.election.Info()
	resp := models.PhaseResponse{Phase: info.Phase.String()}
	if t := at(info); t != nil {
		resp.At = *t
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Vote handles POST /election/votes
func (h *ElectionHandler) Vote(w http.ResponseWriter, r *http.Request, caller election.Caller) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.election.Vote(r.Context(), caller, req.CandidateID); err != nil {
		slog.Debug("vote rejected",
			"voter", caller.Identity,
			"candidate_id", req.CandidateID,
			"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.CallerKeySalt),
			"error", err,
		)
		writeElectionError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		CandidateID: req.CandidateID,
		TotalVotes:  h.election.TotalVotes(),
		Message:     "Vote recorded",
	})
}
