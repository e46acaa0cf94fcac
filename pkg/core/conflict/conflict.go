package conflict

import (
	"time"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
)

// Result reports the outcome of a conflict check. ConflictingJobID is set
// only when Conflicts is true, and names the first clashing job found.
type Result struct {
	Conflicts        bool
	ConflictingJobID string
}

// Overlaps tests two half-open intervals [s1,e1) and [s2,e2). Back-to-back
// bookings share an instant but do not overlap; this must hold exactly,
// since real schedules are routinely built back-to-back.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Check decides whether booking the technician for [start, end) would
// overlap any job already assigned to them, in any role — primary and crew
// bookings both consume the technician's time. excludeJobID skips one job,
// for move/edit operations where the candidate interval belongs to the job
// being changed. Pass "" to exclude nothing.
//
// The check is advisory and side-effect-free: callers invoke it before a
// mutation, and may call it speculatively (e.g. previewing a drag) at no
// cost. A zero-or-negative-length candidate interval never overlaps
// anything, which falls out of the half-open overlap test.
func Check(jobs map[string]model.Job, technicianID string, start, end time.Time, excludeJobID string) Result {
	for id, job := range jobs {
		if id == excludeJobID {
			continue
		}
		if !job.AssignedTo(technicianID) {
			continue
		}
		if Overlaps(start, end, job.StartTime, job.EndTime) {
			return Result{Conflicts: true, ConflictingJobID: id}
		}
	}
	return Result{}
}
