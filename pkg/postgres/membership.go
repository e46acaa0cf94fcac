package postgres

import (
	"context"
	"fmt"

	"github.com/fieldserve/dispatchboard/pkg/db"
)

// GetMemberships retrieves all team-member records with their optionally
// joined account-user records
func (d *DB) GetMemberships(ctx context.Context) ([]db.Membership, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT tm.id, tm.user_id, tm.status, tm.job_title, tm.department,
		       tm.invited_name, tm.phone, tm.email, tm.archived,
		       u.name, u.email, u.phone, u.avatar_url
		FROM team_member tm
		LEFT JOIN app_user u ON u.id = tm.user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var memberships []db.Membership
	for rows.Next() {
		var m db.Membership
		var userID, jobTitle, department, invitedName, phone, email *string
		var accountName, accountEmail, accountPhone, avatarURL *string

		err := rows.Scan(
			&m.Row.MembershipID, &userID, &m.Row.Status, &jobTitle, &department,
			&invitedName, &phone, &email, &m.Row.Archived,
			&accountName, &accountEmail, &accountPhone, &avatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}

		m.Row.UserID = deref(userID)
		m.Row.JobTitle = deref(jobTitle)
		m.Row.Department = deref(department)
		m.Row.InvitedName = deref(invitedName)
		m.Row.Phone = deref(phone)
		m.Row.Email = deref(email)

		if userID != nil {
			m.Account = &db.AccountRow{
				Name:      deref(accountName),
				Email:     deref(accountEmail),
				Phone:     deref(accountPhone),
				AvatarURL: deref(avatarURL),
			}
		}

		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team members: %w", err)
	}

	return memberships, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
