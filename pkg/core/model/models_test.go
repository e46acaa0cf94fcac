package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobStatus(t *testing.T) {
	assert.Equal(t, JobDispatched, ParseJobStatus("dispatched"))
	assert.Equal(t, JobInProgress, ParseJobStatus("in-progress"))
	assert.Equal(t, JobScheduled, ParseJobStatus("on-my-way"), "unknown status falls back")
	assert.Equal(t, JobScheduled, ParseJobStatus(""))
}

func TestParseAssignmentRole(t *testing.T) {
	assert.Equal(t, RoleCrew, ParseAssignmentRole(""))
	assert.Equal(t, RolePrimary, ParseAssignmentRole("primary"))
	assert.Equal(t, AssignmentRole("lead"), ParseAssignmentRole("lead"), "other defined roles pass through")
}

func TestWithAssignments_DerivesFields(t *testing.T) {
	job := Job{ID: "j1"}

	empty := job.WithAssignments(nil)
	assert.True(t, empty.IsUnassigned)
	assert.Empty(t, empty.TechnicianID)

	crewOnly := job.WithAssignments([]JobAssignment{{TechnicianID: "U1", Role: RoleCrew}})
	assert.False(t, crewOnly.IsUnassigned)
	assert.Empty(t, crewOnly.TechnicianID, "technicianId comes from the primary assignment only")

	withPrimary := job.WithAssignments([]JobAssignment{
		{TechnicianID: "U2", Role: RoleCrew},
		{TechnicianID: "U1", Role: RolePrimary},
	})
	assert.Equal(t, "U1", withPrimary.TechnicianID)
}

func TestAssignedTo_AnyRole(t *testing.T) {
	job := Job{}.WithAssignments([]JobAssignment{
		{TechnicianID: "U1", Role: RolePrimary},
		{TechnicianID: "U2", Role: RoleCrew},
	})

	assert.True(t, job.AssignedTo("U1"))
	assert.True(t, job.AssignedTo("U2"))
	assert.False(t, job.AssignedTo("U3"))
}

func TestOccurrences_WeeklyExpansion(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 23, 9, 0, 0, 0, time.UTC)

	job := Job{ID: "j1", StartTime: start, Recurrence: WeeklyRecurrence(&end)}

	occurrences, err := Occurrences(job, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, occurrences, 4, "weekly from Mar 2 through Mar 23 inclusive")
	assert.Equal(t, start, occurrences[0])
	assert.Equal(t, start.AddDate(0, 0, 7), occurrences[1])
	assert.Equal(t, end, occurrences[3])
}

func TestOccurrencesFromRule_OverridesJobRecurrence(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	// The job carries a weekly rule, but the explicit daily rule wins
	job := Job{ID: "j1", StartTime: start, Recurrence: WeeklyRecurrence(&end)}

	occurrences, err := OccurrencesFromRule("FREQ=DAILY;COUNT=3", job, end)

	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, start, occurrences[0])
	assert.Equal(t, start.AddDate(0, 0, 1), occurrences[1])
	assert.Equal(t, start.AddDate(0, 0, 2), occurrences[2])
}

func TestOccurrencesFromRule_MalformedRule(t *testing.T) {
	job := Job{ID: "j1", StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	_, err := OccurrencesFromRule("FREQ=SOMETIMES", job, job.StartTime.AddDate(0, 1, 0))

	require.Error(t, err)
}

func TestOccurrences_NonRecurringJob(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	job := Job{ID: "j1", StartTime: start}

	occurrences, err := Occurrences(job, start.AddDate(0, 1, 0))

	require.NoError(t, err)
	assert.Equal(t, []time.Time{start}, occurrences)

	beyond, err := Occurrences(job, start.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
