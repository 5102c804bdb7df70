// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package metrics provides Prometheus instrumentation for the catalog
// service: request throughput and latency per command, store errors per
// operation, and the data-integrity counters the schedule scan reports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API requests by command and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avtv_requests_total",
			Help: "Total number of catalog API requests",
		},
		[]string{"command", "status"},
	)

	// RequestDuration observes request latency per command.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avtv_request_duration_seconds",
			Help:    "Catalog API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"command"},
	)

	// StoreErrors counts backend failures by store operation.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avtv_store_errors_total",
			Help: "Total number of key-value store command failures",
		},
		[]string{"operation"},
	)

	// DuplicateStarts counts schedule rows dropped because a channel
	// carried two programs with the same start timestamp.
	DuplicateStarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avtv_duplicate_program_starts_total",
			Help: "Total number of duplicate program start timestamps dropped from scan output",
		},
	)

	// SearchQueries counts free-text index queries.
	SearchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avtv_search_queries_total",
			Help: "Total number of free-text search queries",
		},
	)

	// LinkRedirects counts channel alias substitutions before schedule lookups.
	LinkRedirects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avtv_channel_link_redirects_total",
			Help: "Total number of channel alias redirections applied",
		},
	)
)
