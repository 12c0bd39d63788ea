// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
)

// statusFor maps an election error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, election.ErrUnauthorized),
		errors.Is(err, election.ErrNotRegistered):
		return http.StatusForbidden
	case errors.Is(err, election.ErrInvalidPhase),
		errors.Is(err, election.ErrAlreadyRegistered),
		errors.Is(err, election.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, election.ErrInvalidCandidate),
		errors.Is(err, election.ErrInvalidName),
		errors.Is(err, election.ErrInvalidAddress),
		errors.Is(err, election.ErrNoCandidates):
		return http.StatusBadRequest
	case errors.Is(err, election.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeElectionError answers with the status for err. Unexpected errors are
// logged and hidden from the client.
func writeElectionError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("election operation failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
