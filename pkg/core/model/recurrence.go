package model

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Recurrence describes how a job repeats. The source system only ever
// encodes weekly with interval 1; richer rules are deliberately not
// inferred (flagged for product clarification, not a defect to fix here).
type Recurrence struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// WeeklyRecurrence builds the flat weekly rule the source data model carries
func WeeklyRecurrence(endDate *time.Time) *Recurrence {
	return &Recurrence{
		Frequency: "weekly",
		Interval:  1,
		EndDate:   endDate,
	}
}

// RRule converts the recurrence into an rrule anchored at the given start
// instant, so callers can expand occurrences without reimplementing
// calendar math
func (r *Recurrence) RRule(start time.Time) (*rrule.RRule, error) {
	opts := rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: r.Interval,
		Dtstart:  start,
	}
	if r.EndDate != nil {
		opts.Until = *r.EndDate
	}
	return rrule.NewRRule(opts)
}

// Occurrences expands a recurring job's start instants from its own start
// up to and including the given horizon. A job without recurrence yields
// just its own start when it falls inside the horizon.
func Occurrences(job Job, until time.Time) ([]time.Time, error) {
	if job.Recurrence == nil {
		if job.StartTime.After(until) {
			return nil, nil
		}
		return []time.Time{job.StartTime}, nil
	}

	rule, err := job.Recurrence.RRule(job.StartTime)
	if err != nil {
		return nil, err
	}
	return rule.Between(job.StartTime, until, true), nil
}

// OccurrencesFromRule expands an explicit RRULE string anchored at the job's
// start, ignoring whatever recurrence the job itself carries. Used for
// configured per-job overrides.
func OccurrencesFromRule(ruleText string, job Job, until time.Time) ([]time.Time, error) {
	opts, err := rrule.StrToROption(ruleText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recurrence rule: %w", err)
	}
	opts.Dtstart = job.StartTime

	rule, err := rrule.NewRRule(*opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}
	return rule.Between(job.StartTime, until, true), nil
}
