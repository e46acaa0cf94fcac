// Package metrics registers the process-wide prometheus collectors for the
// scheduling core. Collectors are registered once at init and shared by the
// store and services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncTotal counts reconciliation runs by outcome ("success"/"failure")
	SyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatchboard_sync_total",
		Help: "Reconciliation syncs against the source of truth, by outcome.",
	}, []string{"outcome"})

	// ConflictChecks counts conflict-detector invocations
	ConflictChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatchboard_conflict_checks_total",
		Help: "Conflict checks evaluated.",
	})

	// ConflictsFound counts checks that detected an overlap
	ConflictsFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatchboard_conflicts_found_total",
		Help: "Conflict checks that found an overlapping booking.",
	})

	// StoreMutations counts store writes by operation name
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatchboard_store_mutations_total",
		Help: "Scheduling store mutations, by operation.",
	}, []string{"op"})
)
