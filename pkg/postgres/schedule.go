package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/dispatchboard/pkg/db"
)

// GetSchedules retrieves all schedule rows with their joined work-order,
// customer, and property fragments, plus each work order's team-assignment
// join rows
func (d *DB) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	assignmentsByJob, err := d.getTeamAssignments(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.pool.Query(ctx, `
		SELECT s.id, s.job_id, s.customer_id, s.property_id, s.assigned_to,
		       s.title, s.description, s.start_time, s.end_time, s.all_day,
		       s.status, s.is_recurring, s.recurrence_end_date, s.duration,
		       s.notes, s.created_at, s.updated_at,
		       j.job_number, j.title,
		       c.first_name, c.last_name, c.email, c.phone,
		       p.name, p.address, p.address2, p.city, p.state, p.zip_code,
		       p.country, p.lat, p.lon
		FROM schedule s
		LEFT JOIN job j ON j.id = s.job_id
		LEFT JOIN customer c ON c.id = s.customer_id
		LEFT JOIN property p ON p.id = s.property_id
		ORDER BY s.start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []db.Schedule
	for rows.Next() {
		var s db.Schedule
		var jobID, customerID, propertyID, assignedTo *string
		var title, description, status, notes *string
		var recurrenceEnd *time.Time
		var duration *int
		var jobNumber, jobTitle *string
		var firstName, lastName, custEmail, custPhone *string
		var propName, address, address2, city, state, zipCode, country *string
		var lat, lon *float64

		err := rows.Scan(
			&s.Row.ID, &jobID, &customerID, &propertyID, &assignedTo,
			&title, &description, &s.Row.StartTime, &s.Row.EndTime, &s.Row.AllDay,
			&status, &s.Row.IsRecurring, &recurrenceEnd, &duration,
			&notes, &s.Row.CreatedAt, &s.Row.UpdatedAt,
			&jobNumber, &jobTitle,
			&firstName, &lastName, &custEmail, &custPhone,
			&propName, &address, &address2, &city, &state, &zipCode,
			&country, &lat, &lon,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}

		s.Row.JobID = deref(jobID)
		s.Row.CustomerID = deref(customerID)
		s.Row.PropertyID = deref(propertyID)
		s.Row.AssignedTo = deref(assignedTo)
		s.Row.Title = deref(title)
		s.Row.Description = deref(description)
		s.Row.Status = deref(status)
		s.Row.RecurrenceEndDate = recurrenceEnd
		s.Row.Notes = deref(notes)
		if duration != nil {
			s.Row.Duration = *duration
		}

		if jobID != nil {
			s.Job = &db.JobFragment{
				ID:              *jobID,
				JobNumber:       deref(jobNumber),
				Title:           deref(jobTitle),
				TeamAssignments: assignmentsByJob[*jobID],
			}
		}
		if customerID != nil {
			s.Customer = &db.CustomerFragment{
				ID:        *customerID,
				FirstName: deref(firstName),
				LastName:  deref(lastName),
				Email:     deref(custEmail),
				Phone:     deref(custPhone),
			}
		}
		if propertyID != nil {
			s.Property = &db.PropertyFragment{
				ID:       *propertyID,
				Name:     deref(propName),
				Address:  deref(address),
				Address2: deref(address2),
				City:     deref(city),
				State:    deref(state),
				ZipCode:  deref(zipCode),
				Country:  deref(country),
			}
			if lat != nil {
				s.Property.Lat = *lat
			}
			if lon != nil {
				s.Property.Lon = *lon
			}
		}

		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

// getTeamAssignments loads all crew join rows grouped by work-order id.
// Removed rows are included; the assignment resolver filters on removed_at.
func (d *DB) getTeamAssignments(ctx context.Context) (map[string][]db.TeamAssignmentRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, job_id, role, team_member_id, removed_at
		FROM job_team_assignment
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team assignments: %w", err)
	}
	defer rows.Close()

	byJob := make(map[string][]db.TeamAssignmentRow)
	for rows.Next() {
		var a db.TeamAssignmentRow
		var jobID string
		var role *string
		if err := rows.Scan(&a.ID, &jobID, &role, &a.TeamMemberID, &a.RemovedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team assignment: %w", err)
		}
		a.Role = deref(role)
		byJob[jobID] = append(byJob[jobID], a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team assignments: %w", err)
	}

	return byJob, nil
}
