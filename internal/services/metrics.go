// Package services – domain metrics
//
// Prometheus counters for the matching funnel. HTTP-level metrics live in
// the middleware package; the counters here track domain events regardless
// of which transport triggered them, with label cardinality bounded by the
// closed role/source sets.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// interestsCreated counts persisted expressions of interest.
	interestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interests_created_total",
			Help: "Total number of interests persisted by the ledger.",
		},
	)

	// interestsExpired counts pending interests flipped to expired by the
	// housekeeping sweep.
	interestsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interests_expired_total",
			Help: "Total number of pending interests expired by the sweeper.",
		},
	)

	// matchesCreated counts matches by creation path: "confirm" for the
	// two-sided flow, "roll" for the legacy probabilistic path.
	matchesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_created_total",
			Help: "Total number of matches created, by creation path.",
		},
		[]string{"source"},
	)

	// messagesSent counts thread messages by sender role.
	messagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_sent_total",
			Help: "Total number of match messages appended, by sender role.",
		},
		[]string{"role"},
	)

	// ratingsSubmitted counts accepted match ratings.
	ratingsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Total number of accepted match ratings.",
		},
	)

	// cascadeFailures counts failed consistency-cascade steps. A non-zero
	// rate means denormalized match state may be stale and worth a re-run.
	cascadeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_failures_total",
			Help: "Total number of failed consistency cascade steps.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		interestsCreated,
		interestsExpired,
		matchesCreated,
		messagesSent,
		ratingsSubmitted,
		cascadeFailures,
	)
}
