// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-elect/election"
)

// Collector is an election.Sink that keeps Prometheus metrics in step with
// accepted events.
type Collector struct {
	events         *prometheus.CounterVec
	candidateVotes *prometheus.GaugeVec
	phase          prometheus.Gauge
	candidates     prometheus.Gauge
	voters         prometheus.Gauge
	totalVotes     prometheus.Gauge
	lastSeq        prometheus.Gauge
}

// New registers the election metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	promautoFactory := promauto.With(reg)
	return &Collector{
		events: promautoFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_events_total",
			Help: "number of accepted election events by type",
		}, []string{"type"}),
		candidateVotes: promautoFactory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "election_candidate_votes",
			Help: "votes received per candidate",
		}, []string{"candidate_id"}),
		phase: promautoFactory.NewGauge(prometheus.GaugeOpts{
			Name: "election_phase",
			Help: "election phase (0 not started, 1 started, 2 ended)",
		}),
		candidates: promautoFactory.NewGauge(prometheus.GaugeOpts{
			Name: "election_candidates",
			Help: "number of candidates",
		}),
		voters: promautoFactory.NewGauge(prometheus.GaugeOpts{
			Name: "election_registered_voters",
			Help: "number of registered voters",
		}),
		totalVotes: promautoFactory.NewGauge(prometheus.GaugeOpts{
			Name: "election_votes_total",
			Help: "number of votes cast",
		}),
		lastSeq: promautoFactory.NewGauge(prometheus.GaugeOpts{
			Name: "election_last_event_seq",
			Help: "sequence number of the last accepted event",
		}),
	}
}

// Publish implements election.Sink.
func (c *Collector) Publish(evt election.Event) {
	c.events.WithLabelValues(string(evt.Type)).Inc()
	c.lastSeq.Set(float64(evt.Seq))

	switch evt.Type {
	case election.EventCandidateAdded:
		c.candidates.Inc()
		c.candidateVotes.WithLabelValues(strconv.FormatUint(evt.CandidateID, 10)).Set(0)
	case election.EventVoterRegistered:
		c.voters.Inc()
	case election.EventElectionStarted:
		c.phase.Set(float64(election.PhaseStarted))
	case election.EventVoteCasted:
		c.totalVotes.Inc()
		c.candidateVotes.WithLabelValues(strconv.FormatUint(evt.CandidateID, 10)).Inc()
	case election.EventElectionEnded:
		c.phase.Set(float64(election.PhaseEnded))
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
