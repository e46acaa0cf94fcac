package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func bookedJob(id, technicianID string, role model.AssignmentRole, start, end time.Time) model.Job {
	job := model.Job{
		ID:        id,
		Title:     "Job " + id,
		StartTime: start,
		EndTime:   end,
	}
	return job.WithAssignments([]model.JobAssignment{
		{TechnicianID: technicianID, Role: role, Status: model.StatusAvailable},
	})
}

func TestOverlaps_Symmetric(t *testing.T) {
	s1, e1 := at(9, 0), at(10, 0)
	s2, e2 := at(9, 30), at(10, 30)

	assert.True(t, Overlaps(s1, e1, s2, e2))
	assert.True(t, Overlaps(s2, e2, s1, e1))
}

func TestOverlaps_BackToBackIsNotConflict(t *testing.T) {
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(9, 0), at(10, 0)))
}

func TestOverlaps_IdenticalIntervalsConflict(t *testing.T) {
	assert.True(t, Overlaps(at(9, 0), at(10, 0), at(9, 0), at(10, 0)))
}

func TestOverlaps_DisjointIntervals(t *testing.T) {
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(11, 0), at(12, 0)))
}

func TestOverlaps_ContainedInterval(t *testing.T) {
	assert.True(t, Overlaps(at(9, 0), at(12, 0), at(10, 0), at(11, 0)))
}

func TestOverlaps_ZeroLengthCandidate(t *testing.T) {
	// A zero-length interval participates in the math without panicking or
	// producing spurious conflicts
	assert.False(t, Overlaps(at(10, 0), at(10, 0), at(9, 0), at(10, 0)))
	assert.True(t, Overlaps(at(9, 30), at(9, 30), at(9, 0), at(10, 0)))
}

func TestCheck_FindsOverlapForPrimaryBooking(t *testing.T) {
	jobs := map[string]model.Job{
		"j1": bookedJob("j1", "U1", model.RolePrimary, at(9, 0), at(10, 0)),
	}

	result := Check(jobs, "U1", at(9, 30), at(10, 30), "")

	assert.True(t, result.Conflicts)
	assert.Equal(t, "j1", result.ConflictingJobID)
}

func TestCheck_CrewBookingsConsumeTime(t *testing.T) {
	jobs := map[string]model.Job{
		"j1": bookedJob("j1", "U1", model.RoleCrew, at(9, 0), at(10, 0)),
	}

	result := Check(jobs, "U1", at(9, 30), at(10, 30), "")

	assert.True(t, result.Conflicts, "crew bookings consume the technician's calendar too")
}

func TestCheck_OtherTechnicianDoesNotConflict(t *testing.T) {
	jobs := map[string]model.Job{
		"j1": bookedJob("j1", "U2", model.RolePrimary, at(9, 0), at(10, 0)),
	}

	result := Check(jobs, "U1", at(9, 0), at(10, 0), "")

	assert.False(t, result.Conflicts)
}

func TestCheck_ExcludeJobSkipsSelf(t *testing.T) {
	jobs := map[string]model.Job{
		"j1": bookedJob("j1", "U1", model.RolePrimary, at(9, 0), at(10, 0)),
	}

	result := Check(jobs, "U1", at(9, 0), at(10, 0), "j1")

	assert.False(t, result.Conflicts, "a job being moved must not conflict with itself")
}

func TestCheck_BackToBackBookingsAllowed(t *testing.T) {
	jobs := map[string]model.Job{
		"j1": bookedJob("j1", "U1", model.RolePrimary, at(9, 0), at(10, 0)),
	}

	result := Check(jobs, "U1", at(10, 0), at(11, 0), "")

	assert.False(t, result.Conflicts)
}

func TestCheck_EmptyBoard(t *testing.T) {
	result := Check(map[string]model.Job{}, "U1", at(9, 0), at(10, 0), "")

	assert.False(t, result.Conflicts)
	assert.Empty(t, result.ConflictingJobID)
}
