package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/dispatchboard/pkg/core/identity"
	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/db"
)

func testDirectory(t *testing.T) *identity.Directory {
	t.Helper()
	return identity.BuildDirectory([]db.Membership{
		{
			Row:     db.MembershipRow{MembershipID: "M1", UserID: "U1", Status: "active"},
			Account: &db.AccountRow{Name: "Alice Carter"},
		},
	}, identity.DefaultWorkingHours)
}

func baseRow() db.ScheduleRow {
	return db.ScheduleRow{
		ID:        "s1",
		Title:     "AC maintenance",
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:    "dispatched",
	}
}

func TestMapSchedule_FullJoins(t *testing.T) {
	dir := testDirectory(t)

	s := db.Schedule{
		Row: baseRow(),
		Job: &db.JobFragment{
			ID:        "wo1",
			JobNumber: "J-100",
			Title:     "Work order title",
			TeamAssignments: []db.TeamAssignmentRow{
				{ID: "ta1", TeamMemberID: "M1", Role: "crew"},
			},
		},
		Customer: &db.CustomerFragment{ID: "c1", FirstName: "Dana", LastName: "Reyes", Email: "dana@example.com"},
		Property: &db.PropertyFragment{ID: "p1", Address: "12 Elm St", City: "Springfield", State: "IL", ZipCode: "62704", Lat: 39.78, Lon: -89.65},
	}
	s.Row.AssignedTo = "U1"

	job := MapSchedule(s, dir)

	assert.Equal(t, "s1", job.ID)
	assert.Equal(t, "wo1", job.LinkedWorkOrderID)
	assert.Equal(t, "AC maintenance", job.Title)
	assert.Equal(t, model.JobDispatched, job.Status)
	assert.Equal(t, "Dana Reyes", job.Customer.Name)
	assert.Equal(t, "12 Elm St", job.Customer.ServiceAddress)
	assert.Equal(t, "Springfield", job.Location.City)
	assert.InDelta(t, 39.78, job.Location.Lat, 0.001)

	// Alice is both primary and crew on this job: exactly one assignment
	require.Len(t, job.Assignments, 1)
	assert.Equal(t, "U1", job.TechnicianID)
	assert.False(t, job.IsUnassigned)
}

func TestMapSchedule_MissingPropertyYieldsEmptyLocation(t *testing.T) {
	dir := testDirectory(t)

	job := MapSchedule(db.Schedule{Row: baseRow()}, dir)

	assert.Equal(t, model.Location{}, job.Location, "location is a zero value, never absent")
}

func TestMapSchedule_MissingCustomerYieldsPlaceholderName(t *testing.T) {
	dir := testDirectory(t)

	job := MapSchedule(db.Schedule{Row: baseRow()}, dir)

	assert.Equal(t, "Unspecified Customer", job.Customer.Name)
}

func TestMapSchedule_BlankCustomerNameYieldsPlaceholder(t *testing.T) {
	dir := testDirectory(t)

	s := db.Schedule{
		Row:      baseRow(),
		Customer: &db.CustomerFragment{ID: "c1", FirstName: "  ", LastName: ""},
	}

	job := MapSchedule(s, dir)

	assert.Equal(t, "Unspecified Customer", job.Customer.Name)
	assert.Equal(t, "c1", job.Customer.ID)
}

func TestMapSchedule_CustomerNameTrimmed(t *testing.T) {
	dir := testDirectory(t)

	s := db.Schedule{
		Row:      baseRow(),
		Customer: &db.CustomerFragment{FirstName: " Dana ", LastName: ""},
	}

	job := MapSchedule(s, dir)

	assert.Equal(t, "Dana", job.Customer.Name)
}

func TestMapSchedule_UnknownStatusFallsBackToScheduled(t *testing.T) {
	dir := testDirectory(t)

	row := baseRow()
	row.Status = "teleporting"
	job := MapSchedule(db.Schedule{Row: row}, dir)
	assert.Equal(t, model.JobScheduled, job.Status)

	row.Status = ""
	job = MapSchedule(db.Schedule{Row: row}, dir)
	assert.Equal(t, model.JobScheduled, job.Status)
}

func TestMapSchedule_TitleFallsBackToWorkOrder(t *testing.T) {
	dir := testDirectory(t)

	row := baseRow()
	row.Title = ""
	s := db.Schedule{
		Row: row,
		Job: &db.JobFragment{ID: "wo1", JobNumber: "J-1", Title: "Quarterly inspection"},
	}

	job := MapSchedule(s, dir)

	assert.Equal(t, "Quarterly inspection", job.Title)
}

func TestMapSchedule_RecurrenceIsFlatWeekly(t *testing.T) {
	dir := testDirectory(t)

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	row := baseRow()
	row.IsRecurring = true
	row.RecurrenceEndDate = &end

	job := MapSchedule(db.Schedule{Row: row}, dir)

	require.NotNil(t, job.Recurrence)
	assert.Equal(t, "weekly", job.Recurrence.Frequency)
	assert.Equal(t, 1, job.Recurrence.Interval)
	require.NotNil(t, job.Recurrence.EndDate)
	assert.True(t, end.Equal(*job.Recurrence.EndDate))
}

func TestMapSchedule_NonRecurringHasNoRecurrence(t *testing.T) {
	dir := testDirectory(t)

	job := MapSchedule(db.Schedule{Row: baseRow()}, dir)

	assert.Nil(t, job.Recurrence)
}

func TestMapSchedule_DerivedFieldsConsistent(t *testing.T) {
	dir := testDirectory(t)

	unassigned := MapSchedule(db.Schedule{Row: baseRow()}, dir)
	assert.True(t, unassigned.IsUnassigned)
	assert.Empty(t, unassigned.TechnicianID)
	assert.Equal(t, unassigned.IsUnassigned, len(unassigned.Assignments) == 0)

	row := baseRow()
	row.AssignedTo = "U1"
	assigned := MapSchedule(db.Schedule{Row: row}, dir)
	assert.False(t, assigned.IsUnassigned)
	assert.Equal(t, "U1", assigned.TechnicianID)
}

func TestMapSchedule_Pure(t *testing.T) {
	dir := testDirectory(t)

	row := baseRow()
	row.AssignedTo = "U1"
	s := db.Schedule{
		Row:      row,
		Customer: &db.CustomerFragment{FirstName: "Dana", LastName: "Reyes"},
	}

	first := MapSchedule(s, dir)
	second := MapSchedule(s, dir)

	assert.Equal(t, first, second, "same inputs always produce the same Job")
}
