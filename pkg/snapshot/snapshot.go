// Package snapshot persists the scheduling store's keyed collections across
// restarts. Maps are not directly serializable in a stable order, so the
// durable layout flattens them to arrays keyed by explicit id fields;
// rehydration rebuilds the maps deterministically on load.
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/core/store"
)

// Snapshot is the durable layout of the scheduling store. ID and SavedAt
// are provenance so operators can tell stale snapshots apart.
type Snapshot struct {
	ID          string             `json:"id"`
	SavedAt     time.Time          `json:"savedAt"`
	Technicians []model.Technician `json:"technicians"`
	Jobs        []model.Job        `json:"jobs"`
	LastSync    *time.Time         `json:"lastSync"`
}

// Store defines the interface for durable snapshot backends. Load's second
// return is false when no snapshot has been saved yet.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, bool, error)
}

// Capture flattens the scheduling store into a snapshot with fresh
// provenance
func Capture(st *store.Store) Snapshot {
	technicians := st.Technicians()
	jobs := st.Jobs()

	snap := Snapshot{
		ID:          uuid.NewString(),
		SavedAt:     time.Now().UTC(),
		Technicians: make([]model.Technician, 0, len(technicians)),
		Jobs:        make([]model.Job, 0, len(jobs)),
		LastSync:    st.LastSync(),
	}
	for _, t := range technicians {
		snap.Technicians = append(snap.Technicians, t)
	}
	for _, j := range jobs {
		snap.Jobs = append(snap.Jobs, j)
	}
	return snap
}

// Restore rehydrates the scheduling store from a snapshot, rebuilding the
// keyed maps with exact key-to-id correspondence
func Restore(st *store.Store, snap Snapshot) {
	st.Hydrate(snap.Technicians, snap.Jobs, snap.LastSync)
}
