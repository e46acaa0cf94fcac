package mapper

import (
	"strings"

	"github.com/fieldserve/dispatchboard/pkg/core/assign"
	"github.com/fieldserve/dispatchboard/pkg/core/identity"
	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/db"
)

// unspecifiedCustomer labels jobs whose customer fragment is missing or
// empty; list and search UIs require a non-empty customer name on every job
const unspecifiedCustomer = "Unspecified Customer"

// MapSchedule combines one schedule row and its joined fragments into one
// Job. It is a pure function: no I/O, same inputs always produce the same
// Job, and it never fails — missing fragments map to defaults instead.
func MapSchedule(s db.Schedule, dir *identity.Directory) model.Job {
	row := s.Row

	title := row.Title
	var workOrderID string
	var crew []db.TeamAssignmentRow
	if s.Job != nil {
		workOrderID = s.Job.ID
		crew = s.Job.TeamAssignments
		if title == "" {
			title = s.Job.Title
		}
	}

	assignments := assign.Resolve(row.AssignedTo, title, crew, dir)

	job := model.Job{
		ID:                row.ID,
		LinkedWorkOrderID: workOrderID,
		Title:             title,
		Description:       row.Description,
		Customer:          mapCustomer(s.Customer, s.Property),
		Location:          mapLocation(s.Property),
		StartTime:         row.StartTime,
		EndTime:           row.EndTime,
		AllDay:            row.AllDay,
		Status:            model.ParseJobStatus(row.Status),
		Metadata: model.Metadata{
			EstimatedDuration: row.Duration,
			Notes:             row.Notes,
		},
	}

	if row.IsRecurring {
		job.Recurrence = model.WeeklyRecurrence(row.RecurrenceEndDate)
	}

	return job.WithAssignments(assignments)
}

// MapSchedules maps a batch of schedule bundles in input order
func MapSchedules(schedules []db.Schedule, dir *identity.Directory) []model.Job {
	jobs := make([]model.Job, 0, len(schedules))
	for _, s := range schedules {
		jobs = append(jobs, MapSchedule(s, dir))
	}
	return jobs
}

func mapCustomer(c *db.CustomerFragment, p *db.PropertyFragment) model.Customer {
	if c == nil {
		return model.Customer{Name: unspecifiedCustomer}
	}

	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		name = unspecifiedCustomer
	}

	customer := model.Customer{
		ID:    c.ID,
		Name:  name,
		Email: c.Email,
		Phone: c.Phone,
	}
	if p != nil {
		customer.ServiceAddress = p.Address
	}
	return customer
}

// mapLocation returns a zero-value Location when no property was joined, so
// downstream rendering never null-checks
func mapLocation(p *db.PropertyFragment) model.Location {
	if p == nil {
		return model.Location{}
	}
	return model.Location{
		Address:  p.Address,
		Address2: p.Address2,
		City:     p.City,
		State:    p.State,
		ZipCode:  p.ZipCode,
		Country:  p.Country,
		Lat:      p.Lat,
		Lon:      p.Lon,
	}
}
