package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/store"
	"github.com/fieldserve/dispatchboard/pkg/snapshot"
)

// SaveSnapshot flattens the store into a durable snapshot and writes it
// through the configured backend
func SaveSnapshot(ctx context.Context, backend snapshot.Store, st *store.Store, logger *zap.Logger) (snapshot.Snapshot, error) {
	snap := snapshot.Capture(st)

	if err := backend.Save(ctx, snap); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Info("snapshot saved",
		zap.String("snapshot_id", snap.ID),
		zap.Int("technicians", len(snap.Technicians)),
		zap.Int("jobs", len(snap.Jobs)))

	return snap, nil
}

// LoadSnapshot rehydrates the store from the most recent durable snapshot.
// Returns false with no error when no snapshot has been saved yet.
func LoadSnapshot(ctx context.Context, backend snapshot.Store, st *store.Store, logger *zap.Logger) (snapshot.Snapshot, bool, error) {
	snap, found, err := backend.Load(ctx)
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !found {
		logger.Info("no snapshot available")
		return snapshot.Snapshot{}, false, nil
	}

	snapshot.Restore(st, snap)

	logger.Info("snapshot restored",
		zap.String("snapshot_id", snap.ID),
		zap.Time("saved_at", snap.SavedAt),
		zap.Int("technicians", len(snap.Technicians)),
		zap.Int("jobs", len(snap.Jobs)))

	return snap, true, nil
}
