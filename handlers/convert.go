// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/models"
)

func toCandidate(c election.Candidate) models.Candidate {
	return models.Candidate{ID: c.ID, Name: c.Name, VoteCount: c.VoteCount}
}

func toCandidates(cs []election.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCandidate(c))
	}
	return out
}

func toVoter(v election.Voter) models.Voter {
	out := models.Voter{
		Address:      string(v.Address),
		IsRegistered: v.IsRegistered,
		HasVoted:     v.HasVoted,
	}
	if v.HasVoted {
		id := v.VotedCandidateID
		out.VotedCandidateID = &id
	}
	return out
}

func toElection(info election.Info) models.Election {
	return models.Election{
		Name:           info.Name,
		Admin:          string(info.Admin),
		Phase:          info.Phase.String(),
		CandidateCount: info.CandidateCount,
		VoterCount:     info.VoterCount,
		TotalVotes:     info.TotalVotes,
		StartedAt:      info.StartedAt,
		EndedAt:        info.EndedAt,
		Seq:            info.Seq,
	}
}

func toEvent(evt election.Event) models.Event {
	return models.Event{
		Seq:           evt.Seq,
		ID:            evt.ID,
		Type:          string(evt.Type),
		OccurredAt:    evt.OccurredAt,
		CandidateID:   evt.CandidateID,
		CandidateName: evt.CandidateName,
		Voter:         string(evt.Voter),
	}
}
