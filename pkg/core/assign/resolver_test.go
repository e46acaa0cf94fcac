package assign

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
		{
			Row: db.MembershipRow{MembershipID: "M2", Status: "active", InvitedName: "Bob Fields"},
		},
	}, identity.DefaultWorkingHours)
}

func TestResolve_PrimaryFromUserID(t *testing.T) {
	dir := testDirectory(t)

	assignments := Resolve("U1", "Boiler service", nil, dir)

	require.Len(t, assignments, 1)
	a := assignments[0]
	assert.Equal(t, model.RolePrimary, a.Role)
	assert.Equal(t, "U1", a.TechnicianID)
	assert.Equal(t, "M1", a.TeamMemberID)
	assert.Equal(t, "Alice Carter", a.DisplayName)
	assert.True(t, a.IsActive)
}

func TestResolve_PrimaryFromCanonicalID(t *testing.T) {
	dir := testDirectory(t)

	// M2 has no account; older rows may carry the canonical id directly
	assignments := Resolve("M2", "Boiler service", nil, dir)

	require.Len(t, assignments, 1)
	assert.Equal(t, "M2", assignments[0].TechnicianID)
	assert.Equal(t, "Bob Fields", assignments[0].DisplayName)
}

func TestResolve_UnresolvedPrimaryKeepsRawID(t *testing.T) {
	dir := testDirectory(t)

	assignments := Resolve("U999", "Furnace repair", nil, dir)

	require.Len(t, assignments, 1)
	a := assignments[0]
	assert.Equal(t, "U999", a.TechnicianID, "raw id kept so the booking is not silently discarded")
	assert.Equal(t, "Furnace repair", a.DisplayName, "falls back to job title")
	assert.Equal(t, model.StatusOffline, a.Status)
}

func TestResolve_UnresolvedPrimaryWithoutTitleUsesRoleLabel(t *testing.T) {
	dir := testDirectory(t)

	assignments := Resolve("U999", "", nil, dir)

	require.Len(t, assignments, 1)
	assert.Equal(t, "Primary Technician", assignments[0].DisplayName)
}

func TestResolve_CrewFromJoinRows(t *testing.T) {
	dir := testDirectory(t)

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: "M1", Role: "crew"},
		{ID: "ta2", TeamMemberID: "M2"},
	}

	assignments := Resolve("", "", crew, dir)

	require.Len(t, assignments, 2)
	assert.Equal(t, "U1", assignments[0].TechnicianID, "crew row resolves through membership to canonical id")
	assert.Equal(t, model.RoleCrew, assignments[0].Role)
	assert.Equal(t, "M2", assignments[1].TechnicianID)
	assert.Equal(t, model.RoleCrew, assignments[1].Role, "missing role defaults to crew")
}

func TestResolve_RemovedCrewRowsExcluded(t *testing.T) {
	dir := testDirectory(t)
	removed := time.Now()

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: "M1", RemovedAt: &removed},
		{ID: "ta2", TeamMemberID: "M2"},
	}

	assignments := Resolve("", "", crew, dir)

	require.Len(t, assignments, 1)
	assert.Equal(t, "M2", assignments[0].TechnicianID)
}

func TestResolve_MalformedCrewRowsFiltered(t *testing.T) {
	dir := testDirectory(t)

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: ""},
		{ID: "ta2", TeamMemberID: "M2"},
	}

	assignments := Resolve("", "", crew, dir)

	require.Len(t, assignments, 1)
}

func TestResolve_PrimaryAlsoInCrewAppearsOnce(t *testing.T) {
	dir := testDirectory(t)

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: "M1", Role: "crew"},
	}

	assignments := Resolve("U1", "", crew, dir)

	require.Len(t, assignments, 1, "person who is both assigned_to and a crew entry appears exactly once")
	assert.Equal(t, model.RolePrimary, assignments[0].Role)
	assert.Equal(t, "U1", assignments[0].TechnicianID)
}

func TestResolve_DuplicateCrewRowsCollapsed(t *testing.T) {
	dir := testDirectory(t)

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: "M2", Role: "crew"},
		{ID: "ta2", TeamMemberID: "M2", Role: "crew"},
	}

	assignments := Resolve("", "", crew, dir)

	require.Len(t, assignments, 1)
}

func TestResolve_UnresolvedCrewMembersNotCollapsedTogether(t *testing.T) {
	dir := testDirectory(t)

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: "M90", Role: "crew"},
		{ID: "ta2", TeamMemberID: "M91", Role: "crew"},
	}

	assignments := Resolve("", "", crew, dir)

	require.Len(t, assignments, 2, "distinct unresolved members key on their membership ids")
	assert.Equal(t, "M90", assignments[0].TeamMemberID)
	assert.Equal(t, "M91", assignments[1].TeamMemberID)
	assert.Equal(t, "Crew Member", assignments[0].DisplayName)
}

func TestResolve_Idempotent(t *testing.T) {
	dir := testDirectory(t)

	crew := []db.TeamAssignmentRow{
		{ID: "ta1", TeamMemberID: "M1", Role: "crew"},
		{ID: "ta2", TeamMemberID: "M2", Role: "crew"},
		{ID: "ta3", TeamMemberID: "M2", Role: "crew"},
	}

	first := Resolve("U1", "Job", crew, dir)
	second := Resolve("U1", "Job", crew, dir)

	assert.Equal(t, first, second, "re-running the resolver on identical input yields an identical list")
}
