package identity

import (
	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/db"
)

// DefaultWorkingHours is the window applied when the caller does not supply
// one; the source system does not carry per-member hours yet.
var DefaultWorkingHours = model.WorkingHours{Start: "08:00", End: "17:00"}

// genericDisplayName labels a membership with no usable display fields.
// Every membership must render on the calendar, even with partial data.
const genericDisplayName = "Team Member"

// Directory is the multi-key technician lookup. The same physical person is
// referenced through up to three key spaces: the canonical id used across
// the domain, the account-user id (primary assignments), and the
// team-membership id (crew join rows). The two secondary indices are rebuilt
// with the canonical collection and never mutated independently.
type Directory struct {
	technicians    []model.Technician
	byID           map[string]model.Technician
	byUserID       map[string]model.Technician
	byTeamMemberID map[string]model.Technician
}

// BuildDirectory resolves membership rows into canonical technicians.
//
// Canonical id selection: the linked account-user id when present, otherwise
// the membership id. This is what lets a primary assignment (keyed by user
// id) and a crew assignment (keyed by membership id) resolve to the same
// person. Rows without a membership id cannot be keyed and are skipped;
// every other row yields a technician.
//
// Every technician gets the given daily working-hours window; an incomplete
// window falls back to DefaultWorkingHours.
func BuildDirectory(memberships []db.Membership, hours model.WorkingHours) *Directory {
	if hours.Start == "" || hours.End == "" {
		hours = DefaultWorkingHours
	}

	d := &Directory{
		technicians:    make([]model.Technician, 0, len(memberships)),
		byID:           make(map[string]model.Technician, len(memberships)),
		byUserID:       make(map[string]model.Technician, len(memberships)),
		byTeamMemberID: make(map[string]model.Technician, len(memberships)),
	}

	for _, m := range memberships {
		if m.Row.MembershipID == "" {
			continue
		}

		tech := resolveTechnician(m, hours)
		d.technicians = append(d.technicians, tech)
		d.byID[tech.ID] = tech
		if tech.UserID != "" {
			d.byUserID[tech.UserID] = tech
		}
		d.byTeamMemberID[tech.TeamMemberID] = tech
	}

	return d
}

// resolveTechnician maps one membership (plus optional account join) to a
// canonical technician record
func resolveTechnician(m db.Membership, hours model.WorkingHours) model.Technician {
	canonicalID := m.Row.MembershipID
	if m.Row.UserID != "" {
		canonicalID = m.Row.UserID
	}

	// Display name falls back through account name, invited name, job
	// title, then a generic label
	name := ""
	email := m.Row.Email
	phone := m.Row.Phone
	avatarURL := ""
	if m.Account != nil {
		name = m.Account.Name
		if m.Account.Email != "" {
			email = m.Account.Email
		}
		if m.Account.Phone != "" {
			phone = m.Account.Phone
		}
		avatarURL = m.Account.AvatarURL
	}
	if name == "" {
		name = m.Row.InvitedName
	}
	if name == "" {
		name = m.Row.JobTitle
	}
	if name == "" {
		name = genericDisplayName
	}

	// Membership activity is a deliberate binary: active and not archived
	// means bookable, everything else is offline
	status := model.StatusOffline
	isActive := false
	if m.Row.Status == "active" && !m.Row.Archived {
		status = model.StatusAvailable
		isActive = true
	}

	return model.Technician{
		ID:           canonicalID,
		UserID:       m.Row.UserID,
		TeamMemberID: m.Row.MembershipID,
		DisplayName:  name,
		Email:        email,
		Phone:        phone,
		AvatarURL:    avatarURL,
		Role:         m.Row.JobTitle,
		Department:   m.Row.Department,
		Status:       status,
		IsActive:     isActive,
		WorkingHours: hours,
	}
}

// Technicians returns all resolved technicians in input order
func (d *Directory) Technicians() []model.Technician {
	return d.technicians
}

// ByID looks a technician up by canonical id
func (d *Directory) ByID(id string) (model.Technician, bool) {
	t, ok := d.byID[id]
	return t, ok
}

// ByUserID looks a technician up by account-user id
func (d *Directory) ByUserID(userID string) (model.Technician, bool) {
	t, ok := d.byUserID[userID]
	return t, ok
}

// ByTeamMemberID looks a technician up by membership id
func (d *Directory) ByTeamMemberID(teamMemberID string) (model.Technician, bool) {
	t, ok := d.byTeamMemberID[teamMemberID]
	return t, ok
}

// Counts reports the size of each index, a cheap data-quality signal: the
// user-id index is smaller than the canonical one whenever members have no
// login account.
func (d *Directory) Counts() (byID, byUserID, byTeamMemberID int) {
	return len(d.byID), len(d.byUserID), len(d.byTeamMemberID)
}
