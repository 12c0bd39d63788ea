// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes election state as Prometheus metrics. A Collector
// is attached to the election as a sink, so replayed events at startup bring
// the gauges up to date before the server starts listening.
package metrics
