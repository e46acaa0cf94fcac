package assign

import (
	"github.com/fieldserve/dispatchboard/pkg/core/identity"
	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/db"
)

// Generic labels used when an assignment reference cannot be resolved
// against the directory. The raw id is kept so the booking still renders.
const (
	primaryFallbackLabel = "Primary Technician"
	crewFallbackLabel    = "Crew Member"
)

// Resolve builds the deduplicated assignment list for one job from the
// schedule row's direct assigned-to reference (primary) and the work
// order's team-assignment join rows (crew).
//
// The resolver is total and idempotent: malformed join rows are filtered
// out, unresolvable references degrade to raw-id assignments, and a person
// who is both the primary assignee and a crew entry appears exactly once
// per role.
func Resolve(assignedTo string, jobTitle string, crew []db.TeamAssignmentRow, dir *identity.Directory) []model.JobAssignment {
	candidates := make([]model.JobAssignment, 0, len(crew)+1)

	if assignedTo != "" {
		candidates = append(candidates, resolvePrimary(assignedTo, jobTitle, dir))
	}
	for _, row := range crew {
		if row.TeamMemberID == "" || row.RemovedAt != nil {
			continue
		}
		candidates = append(candidates, resolveCrew(row, jobTitle, dir))
	}

	return dedupe(candidates)
}

// resolvePrimary resolves the schedule row's assigned-to reference. The
// field holds an account-user id, but older rows may already carry a
// canonical id, so both indices are tried.
func resolvePrimary(assignedTo, jobTitle string, dir *identity.Directory) model.JobAssignment {
	tech, ok := dir.ByUserID(assignedTo)
	if !ok {
		tech, ok = dir.ByID(assignedTo)
	}
	if !ok {
		return model.JobAssignment{
			TechnicianID: assignedTo,
			DisplayName:  fallbackName(jobTitle, primaryFallbackLabel),
			Role:         model.RolePrimary,
			Status:       model.StatusOffline,
		}
	}

	return model.JobAssignment{
		TechnicianID: tech.ID,
		TeamMemberID: tech.TeamMemberID,
		DisplayName:  tech.DisplayName,
		AvatarURL:    tech.AvatarURL,
		Role:         model.RolePrimary,
		Status:       tech.Status,
		IsActive:     tech.IsActive,
	}
}

// resolveCrew resolves one live team-assignment join row through the
// membership index (falling through from any linked account)
func resolveCrew(row db.TeamAssignmentRow, jobTitle string, dir *identity.Directory) model.JobAssignment {
	role := model.ParseAssignmentRole(row.Role)

	tech, ok := dir.ByTeamMemberID(row.TeamMemberID)
	if !ok {
		return model.JobAssignment{
			TeamMemberID: row.TeamMemberID,
			DisplayName:  fallbackName(jobTitle, crewFallbackLabel),
			Role:         role,
			Status:       model.StatusOffline,
		}
	}

	return model.JobAssignment{
		TechnicianID: tech.ID,
		TeamMemberID: tech.TeamMemberID,
		DisplayName:  tech.DisplayName,
		AvatarURL:    tech.AvatarURL,
		Role:         role,
		Status:       tech.Status,
		IsActive:     tech.IsActive,
	}
}

// dedupe collapses candidates sharing a (role, technician) key, keeping the
// first occurrence, and drops crew entries for the person already holding
// primary — being listed in the crew join table on top of the direct
// assignment books the same person once, not twice. Unresolved assignments
// key on their membership id so two distinct unresolved crew members are
// not collapsed into one.
func dedupe(candidates []model.JobAssignment) []model.JobAssignment {
	seen := make(map[string]bool, len(candidates))
	primaries := make(map[string]bool, 1)
	result := make([]model.JobAssignment, 0, len(candidates))

	for _, a := range candidates {
		id := a.TechnicianID
		if id == "" {
			id = a.TeamMemberID
		}
		key := string(a.Role) + "\x00" + id
		if seen[key] {
			continue
		}
		if a.Role != model.RolePrimary && primaries[id] {
			continue
		}
		seen[key] = true
		if a.Role == model.RolePrimary {
			primaries[id] = true
		}
		result = append(result, a)
	}

	return result
}

func fallbackName(jobTitle, roleLabel string) string {
	if jobTitle != "" {
		return jobTitle
	}
	return roleLabel
}
