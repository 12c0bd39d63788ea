// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidPhase      = errors.New("invalid election phase")
	ErrAlreadyRegistered = errors.New("voter already registered")
	ErrNotRegistered     = errors.New("voter not registered")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrInvalidCandidate  = errors.New("invalid candidate")
	ErrInvalidName       = errors.New("invalid candidate name")
	ErrInvalidAddress    = errors.New("invalid voter address")
	ErrNoCandidates      = errors.New("no candidates")
	ErrNotFound          = errors.New("not found")
)
