package db

import "time"

// ScheduleRow represents a raw schedule database record
type ScheduleRow struct {
	ID                string
	JobID             string // nullable, foreign key to a work order
	CustomerID        string // nullable
	PropertyID        string // nullable
	AssignedTo        string // nullable, account-user id of the primary technician
	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	AllDay            bool
	Status            string // validated against the domain set at mapping time
	IsRecurring       bool
	RecurrenceEndDate *time.Time
	Duration          int // minutes, nullable in source (0 when absent)
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TeamAssignmentRow represents a crew join record attached to a work order.
// A non-nil RemovedAt marks the assignment as withdrawn.
type TeamAssignmentRow struct {
	ID           string
	Role         string // nullable, defaults to crew
	TeamMemberID string
	RemovedAt    *time.Time
}

// JobFragment represents the joined work-order record for a schedule row
type JobFragment struct {
	ID              string
	JobNumber       string
	Title           string
	TeamAssignments []TeamAssignmentRow
}

// CustomerFragment represents the joined customer record
type CustomerFragment struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// PropertyFragment represents the joined service-property record
type PropertyFragment struct {
	ID       string
	Name     string
	Address  string
	Address2 string
	City     string
	State    string
	ZipCode  string
	Country  string
	Lat      float64
	Lon      float64
}

// MembershipRow represents a company-scoped team-member record. UserID is
// empty for members with no login account.
type MembershipRow struct {
	MembershipID string
	UserID       string
	Status       string
	JobTitle     string
	Department   string
	InvitedName  string
	Phone        string
	Email        string
	Archived     bool
}

// AccountRow represents the joined account-user record for a membership
type AccountRow struct {
	Name      string
	Email     string
	Phone     string
	AvatarURL string
}
