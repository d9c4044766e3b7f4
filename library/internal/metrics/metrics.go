package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

var (
	BorrowSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrow_submissions_total",
		Help:      "Borrow request submissions by result (created, conflict, invalid, error).",
	}, []string{"result"})

	LendingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lending_transitions_total",
		Help:      "Committed availability transitions by target availability.",
	}, []string{"to"})

	MetadataLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_lookups_total",
		Help:      "ISBN metadata lookups by result (hit, found, not_found, degraded, skipped).",
	}, []string{"result"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lending_events_published_total",
		Help:      "Lending events handed to the broker by result (ok, error).",
	}, []string{"result"})
)
