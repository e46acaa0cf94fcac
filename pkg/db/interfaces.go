package db

import "context"

// Membership bundles a membership row with its optionally-joined account
// record. Account is nil when the member has no login.
type Membership struct {
	Row     MembershipRow
	Account *AccountRow
}

// Schedule bundles a schedule row with its optionally-joined fragments.
// Nil fragments mean the corresponding foreign key was absent.
type Schedule struct {
	Row      ScheduleRow
	Job      *JobFragment
	Customer *CustomerFragment
	Property *PropertyFragment
}

// SourceStore defines the interface for fetching the scheduling source of
// truth. The reconciliation pipeline reads everything through this boundary.
type SourceStore interface {
	GetMemberships(ctx context.Context) ([]Membership, error)
	GetSchedules(ctx context.Context) ([]Schedule, error)
}
