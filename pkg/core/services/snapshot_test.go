package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/core/store"
	"github.com/fieldserve/dispatchboard/pkg/snapshot"
)

func TestSaveAndLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := snapshot.NewFileStore(filepath.Join(t.TempDir(), "snapshot.json"))

	st := store.New()
	st.PutTechnician(model.Technician{ID: "U1", TeamMemberID: "M1", DisplayName: "Alice"})
	job := model.Job{ID: "j1", StartTime: at(2, 9, 0), EndTime: at(2, 10, 0)}
	st.PutJob(job.WithAssignments([]model.JobAssignment{
		{TechnicianID: "U1", Role: model.RolePrimary},
	}))

	saved, err := SaveSnapshot(ctx, backend, st, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, saved.Technicians, 1)
	assert.Len(t, saved.Jobs, 1)

	fresh := store.New()
	loaded, found, err := LoadSnapshot(ctx, backend, fresh, zap.NewNop())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved.ID, loaded.ID)

	restored, ok := fresh.Job("j1")
	require.True(t, ok)
	assert.Equal(t, "U1", restored.TechnicianID)
}

func TestLoadSnapshot_NoSnapshotYet(t *testing.T) {
	backend := snapshot.NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	_, found, err := LoadSnapshot(context.Background(), backend, store.New(), zap.NewNop())

	require.NoError(t, err)
	assert.False(t, found)
}
