package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/identity"
	"github.com/fieldserve/dispatchboard/pkg/core/mapper"
	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/core/store"
	"github.com/fieldserve/dispatchboard/pkg/db"
	"github.com/fieldserve/dispatchboard/pkg/metrics"
)

// SyncResult summarizes one reconciliation run
type SyncResult struct {
	TechnicianCount int
	JobCount        int
	UnassignedJobs  int
	SyncedAt        time.Time
}

// Sync runs the full reconciliation pipeline: fetch memberships and
// schedules from the source of truth, resolve identities, map jobs, and
// atomically replace the store's collections.
//
// On a fetch failure the store's previous snapshot is left untouched and
// the error is recorded on the store, so consumers keep rendering stale
// data instead of an empty board. A sync already in flight is not cancelled
// or queued; each request runs to completion and the last swap wins.
//
// hours is the configured daily working window stamped on every technician.
func Sync(ctx context.Context, source db.SourceStore, st *store.Store, hours model.WorkingHours, logger *zap.Logger) (*SyncResult, error) {
	logger.Debug("starting schedule sync")

	memberships, err := source.GetMemberships(ctx)
	if err != nil {
		return nil, failSync(st, fmt.Errorf("failed to fetch team members: %w", err))
	}

	schedules, err := source.GetSchedules(ctx)
	if err != nil {
		return nil, failSync(st, fmt.Errorf("failed to fetch schedules: %w", err))
	}

	// Reconcile fully before touching the store: the old collections stay
	// visible until the new ones are assembled
	dir := identity.BuildDirectory(memberships, hours)
	jobs := mapper.MapSchedules(schedules, dir)

	syncedAt := time.Now().UTC()
	st.ReplaceAll(dir.Technicians(), jobs, syncedAt)
	metrics.SyncTotal.WithLabelValues("success").Inc()

	result := &SyncResult{
		TechnicianCount: len(dir.Technicians()),
		JobCount:        len(jobs),
		SyncedAt:        syncedAt,
	}
	for _, j := range jobs {
		if j.IsUnassigned {
			result.UnassignedJobs++
		}
	}

	logger.Info("schedule sync complete",
		zap.Int("technicians", result.TechnicianCount),
		zap.Int("jobs", result.JobCount),
		zap.Int("unassigned_jobs", result.UnassignedJobs))

	return result, nil
}

func failSync(st *store.Store, err error) error {
	st.RecordSyncError(err.Error())
	metrics.SyncTotal.WithLabelValues("failure").Inc()
	return err
}
