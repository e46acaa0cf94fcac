package model

import "time"

// TechnicianStatus reflects whether a technician can currently be booked
type TechnicianStatus string

const (
	StatusAvailable TechnicianStatus = "available"
	StatusOffline   TechnicianStatus = "offline"
)

// JobStatus is the lifecycle state of a scheduled job
type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobDispatched JobStatus = "dispatched"
	JobArrived    JobStatus = "arrived"
	JobInProgress JobStatus = "in-progress"
	JobCompleted  JobStatus = "completed"
	JobClosed     JobStatus = "closed"
	JobCancelled  JobStatus = "cancelled"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobScheduled, JobDispatched, JobArrived, JobInProgress, JobCompleted, JobClosed, JobCancelled:
		return true
	}
	return false
}

// ParseJobStatus validates a raw status string, falling back to "scheduled"
// for anything outside the allowed set (including the empty string)
func ParseJobStatus(raw string) JobStatus {
	if s := JobStatus(raw); s.IsValid() {
		return s
	}
	return JobScheduled
}

// AssignmentRole distinguishes the directly responsible technician from
// additional crew attached through the team-assignment join table
type AssignmentRole string

const (
	RolePrimary AssignmentRole = "primary"
	RoleCrew    AssignmentRole = "crew"
)

// ParseAssignmentRole returns the role from a join row, defaulting to crew
// when the source row carries no role
func ParseAssignmentRole(raw string) AssignmentRole {
	if raw == "" {
		return RoleCrew
	}
	return AssignmentRole(raw)
}

// WorkingHours is a technician's default daily window, e.g. "08:00"–"17:00"
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Technician is the canonical identity for a person who can be booked.
// ID is the single id used to key technicians throughout the domain: the
// linked account-user id when one exists, otherwise the membership id.
type Technician struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId,omitempty"`
	TeamMemberID string           `json:"teamMemberId"`
	DisplayName  string           `json:"displayName"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	AvatarURL    string           `json:"avatarUrl,omitempty"`
	Role         string           `json:"role,omitempty"`
	Department   string           `json:"department,omitempty"`
	Status       TechnicianStatus `json:"status"`
	IsActive     bool             `json:"isActive"`
	WorkingHours WorkingHours     `json:"workingHours"`
	Color        string           `json:"color,omitempty"`
}

// Customer is a denormalized snapshot taken at mapping time. Name is never
// empty: jobs with no customer fragment carry "Unspecified Customer".
type Customer struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ServiceAddress string `json:"serviceAddress,omitempty"`
}

// Location is the job's service address. A job always carries a Location
// value; when no property row was joined every field is empty.
type Location struct {
	Address  string  `json:"address,omitempty"`
	Address2 string  `json:"address2,omitempty"`
	City     string  `json:"city,omitempty"`
	State    string  `json:"state,omitempty"`
	ZipCode  string  `json:"zipCode,omitempty"`
	Country  string  `json:"country,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

// JobAssignment attaches one technician to one job in one role. When the
// source reference could not be resolved against the directory the raw ids
// are retained so the booking still renders.
type JobAssignment struct {
	TechnicianID string           `json:"technicianId,omitempty"`
	TeamMemberID string           `json:"teamMemberId,omitempty"`
	DisplayName  string           `json:"displayName"`
	AvatarURL    string           `json:"avatarUrl,omitempty"`
	Role         AssignmentRole   `json:"role"`
	Status       TechnicianStatus `json:"status"`
	IsActive     bool             `json:"isActive"`
}

// Metadata carries free-form scheduling hints that are not business keys
type Metadata struct {
	EstimatedDuration int    `json:"estimatedDuration,omitempty"` // minutes
	Notes             string `json:"notes,omitempty"`
}

// Job is a bookable calendar entry. Assignments are deduplicated on
// (role, technician); TechnicianID and IsUnassigned are derived from the
// assignment list and must never be set independently of it.
type Job struct {
	ID                string          `json:"id"`
	LinkedWorkOrderID string          `json:"linkedWorkOrderId,omitempty"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Customer          Customer        `json:"customer"`
	Location          Location        `json:"location"`
	StartTime         time.Time       `json:"startTime"`
	EndTime           time.Time       `json:"endTime"`
	AllDay            bool            `json:"allDay"`
	Status            JobStatus       `json:"status"`
	Assignments       []JobAssignment `json:"assignments"`
	TechnicianID      string          `json:"technicianId"`
	IsUnassigned      bool            `json:"isUnassigned"`
	Recurrence        *Recurrence     `json:"recurrence,omitempty"`
	Metadata          Metadata        `json:"metadata"`
}

// WithAssignments returns a copy of the job with the given assignment list
// and the derived fields recomputed from it. Jobs are never mutated in
// place: any assignment change produces a new Job value.
func (j Job) WithAssignments(assignments []JobAssignment) Job {
	j.Assignments = assignments
	j.TechnicianID = primaryTechnicianID(assignments)
	j.IsUnassigned = len(assignments) == 0
	return j
}

// AssignedTo reports whether any assignment, primary or crew, books the
// given technician. Both roles consume the technician's calendar.
func (j Job) AssignedTo(technicianID string) bool {
	for _, a := range j.Assignments {
		if a.TechnicianID == technicianID {
			return true
		}
	}
	return false
}

func primaryTechnicianID(assignments []JobAssignment) string {
	for _, a := range assignments {
		if a.Role == RolePrimary {
			return a.TechnicianID
		}
	}
	return ""
}
