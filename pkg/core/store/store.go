// Package store holds the canonical in-process scheduling state: keyed
// technician and job collections plus UI selection pointers. It is the only
// component that mutates that state.
//
// Every mutation is copy-on-write: the old map is read, a new map with the
// one entry changed is built, and the stored reference is swapped. External
// observers relying on reference-equality change detection therefore see
// every mutation as a new collection value.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fieldserve/dispatchboard/pkg/core/conflict"
	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/metrics"
)

// JobPatch describes a partial job update for bulk operations. Nil fields
// are left unchanged.
type JobPatch struct {
	Title       *string
	Description *string
	Status      *model.JobStatus
	StartTime   *time.Time
	EndTime     *time.Time
	Notes       *string
}

// Store is the scheduling state container. All methods are safe for
// concurrent use; reads during an in-flight sync observe the previous
// snapshot until the replacement is fully assembled.
type Store struct {
	mu sync.RWMutex

	technicians map[string]model.Technician
	jobs        map[string]model.Job

	selectedJobID        string
	selectedTechnicianID string

	lastSync  *time.Time
	lastError string
}

// New creates an empty store
func New() *Store {
	return &Store{
		technicians: map[string]model.Technician{},
		jobs:        map[string]model.Job{},
	}
}

// Technicians returns the current technician collection. The returned map
// is the live reference and must not be mutated by callers; every store
// write replaces it wholesale.
func (s *Store) Technicians() map[string]model.Technician {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.technicians
}

// Jobs returns the current job collection (same sharing contract as
// Technicians)
func (s *Store) Jobs() map[string]model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs
}

// Technician looks one technician up by canonical id
func (s *Store) Technician(id string) (model.Technician, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.technicians[id]
	return t, ok
}

// Job looks one job up by id
func (s *Store) Job(id string) (model.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

// PutTechnician adds or replaces one technician
func (s *Store) PutTechnician(t model.Technician) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneTechnicians(s.technicians)
	next[t.ID] = t
	s.technicians = next
	metrics.StoreMutations.WithLabelValues("put_technician").Inc()
}

// RemoveTechnician deletes one technician by id
func (s *Store) RemoveTechnician(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.technicians[id]; !ok {
		return
	}
	next := cloneTechnicians(s.technicians)
	delete(next, id)
	s.technicians = next
	if s.selectedTechnicianID == id {
		s.selectedTechnicianID = ""
	}
	metrics.StoreMutations.WithLabelValues("remove_technician").Inc()
}

// PutJob adds or replaces one job
func (s *Store) PutJob(j model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putJobLocked(j, "put_job")
}

// MoveJob reassigns and retimes a job in one atomic update: the technician
// swap and the time change land in the same map replacement. Reassignment
// rewrites the primary assignment; crew assignments are preserved. The
// store does not reject conflicting writes — callers run the conflict
// check first (the check is advisory by design, so optimistic local edits
// stay possible while a sync is in flight).
func (s *Store) MoveJob(jobID, technicianID string, start, end time.Time) (model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return model.Job{}, false
	}

	job.StartTime = start
	job.EndTime = end

	if technicianID != "" && technicianID != job.TechnicianID {
		job = job.WithAssignments(reassignPrimary(job.Assignments, technicianID, s.technicians))
	}

	s.putJobLocked(job, "move_job")
	return job, true
}

// DuplicateJob clones a job under a fresh id with its window shifted by the
// given offset and status reset to scheduled. Returns the clone.
func (s *Store) DuplicateJob(jobID string, shift time.Duration) (model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return model.Job{}, false
	}

	clone := job
	clone.ID = uuid.NewString()
	clone.StartTime = job.StartTime.Add(shift)
	clone.EndTime = job.EndTime.Add(shift)
	clone.Status = model.JobScheduled
	clone.Assignments = append([]model.JobAssignment(nil), job.Assignments...)
	clone = clone.WithAssignments(clone.Assignments)

	s.putJobLocked(clone, "duplicate_job")
	return clone, true
}

// DeleteJob removes one job by id
func (s *Store) DeleteJob(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return false
	}
	next := cloneJobs(s.jobs)
	delete(next, id)
	s.jobs = next
	if s.selectedJobID == id {
		s.selectedJobID = ""
	}
	metrics.StoreMutations.WithLabelValues("delete_job").Inc()
	return true
}

// BulkUpdateJobs applies one patch to every listed job in a single map
// replacement. Unknown ids are skipped; returns the number updated.
func (s *Store) BulkUpdateJobs(ids []string, patch JobPatch) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneJobs(s.jobs)
	updated := 0
	for _, id := range ids {
		job, ok := next[id]
		if !ok {
			continue
		}
		next[id] = applyPatch(job, patch)
		updated++
	}
	if updated > 0 {
		s.jobs = next
		metrics.StoreMutations.WithLabelValues("bulk_update_jobs").Inc()
	}
	return updated
}

// BulkDeleteJobs removes every listed job in a single map replacement;
// returns the number deleted
func (s *Store) BulkDeleteJobs(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneJobs(s.jobs)
	deleted := 0
	for _, id := range ids {
		if _, ok := next[id]; !ok {
			continue
		}
		delete(next, id)
		deleted++
		if s.selectedJobID == id {
			s.selectedJobID = ""
		}
	}
	if deleted > 0 {
		s.jobs = next
		metrics.StoreMutations.WithLabelValues("bulk_delete_jobs").Inc()
	}
	return deleted
}

// CheckConflict runs the conflict detector against the current job
// collection for one technician's candidate interval
func (s *Store) CheckConflict(technicianID string, start, end time.Time, excludeJobID string) conflict.Result {
	s.mu.RLock()
	jobs := s.jobs
	s.mu.RUnlock()

	metrics.ConflictChecks.Inc()
	result := conflict.Check(jobs, technicianID, start, end, excludeJobID)
	if result.Conflicts {
		metrics.ConflictsFound.Inc()
	}
	return result
}

// ReplaceAll atomically swaps in a freshly reconciled snapshot and records
// the sync time. Consumers never observe a partially-updated state: the old
// collections stay visible until both replacements land.
func (s *Store) ReplaceAll(technicians []model.Technician, jobs []model.Job, syncedAt time.Time) {
	techMap := make(map[string]model.Technician, len(technicians))
	for _, t := range technicians {
		techMap[t.ID] = t
	}
	jobMap := make(map[string]model.Job, len(jobs))
	for _, j := range jobs {
		jobMap[j.ID] = j
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.technicians = techMap
	s.jobs = jobMap
	s.lastSync = &syncedAt
	s.lastError = ""
	metrics.StoreMutations.WithLabelValues("replace_all").Inc()
}

// Hydrate rebuilds the keyed collections from flattened arrays, restoring
// exact key-to-id correspondence after a restart. Unlike ReplaceAll it
// carries the persisted sync time through unchanged (possibly nil). Any
// failure message from before the restore is cleared along with the data
// it described.
func (s *Store) Hydrate(technicians []model.Technician, jobs []model.Job, lastSync *time.Time) {
	techMap := make(map[string]model.Technician, len(technicians))
	for _, t := range technicians {
		techMap[t.ID] = t
	}
	jobMap := make(map[string]model.Job, len(jobs))
	for _, j := range jobs {
		jobMap[j.ID] = j
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.technicians = techMap
	s.jobs = jobMap
	s.lastSync = lastSync
	s.lastError = ""
	metrics.StoreMutations.WithLabelValues("hydrate").Inc()
}

// RecordSyncError notes a failed sync, leaving the previous in-memory
// snapshot untouched so consumers see stale data instead of an empty board
func (s *Store) RecordSyncError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

// LastSync returns the time of the last successful reconciliation, or nil
// if none has completed
func (s *Store) LastSync() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

// LastError returns the last sync failure message, empty after a success
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// SelectJob sets the UI job selection pointer ("" clears it)
func (s *Store) SelectJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedJobID = id
}

// SelectTechnician sets the UI technician selection pointer ("" clears it)
func (s *Store) SelectTechnician(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTechnicianID = id
}

// Selection returns the current UI selection pointers
func (s *Store) Selection() (jobID, technicianID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedJobID, s.selectedTechnicianID
}

// putJobLocked replaces one job entry copy-on-write; callers hold mu
func (s *Store) putJobLocked(j model.Job, op string) {
	next := cloneJobs(s.jobs)
	next[j.ID] = j
	s.jobs = next
	metrics.StoreMutations.WithLabelValues(op).Inc()
}

// reassignPrimary rewrites the primary assignment to the given technician,
// resolving display fields from the store's directory when possible. Crew
// assignments are kept as-is.
func reassignPrimary(assignments []model.JobAssignment, technicianID string, technicians map[string]model.Technician) []model.JobAssignment {
	primary := model.JobAssignment{
		TechnicianID: technicianID,
		DisplayName:  "Primary Technician",
		Role:         model.RolePrimary,
		Status:       model.StatusOffline,
	}
	if tech, ok := technicians[technicianID]; ok {
		primary.TeamMemberID = tech.TeamMemberID
		primary.DisplayName = tech.DisplayName
		primary.AvatarURL = tech.AvatarURL
		primary.Status = tech.Status
		primary.IsActive = tech.IsActive
	}

	next := []model.JobAssignment{primary}
	for _, a := range assignments {
		if a.Role == model.RolePrimary {
			continue
		}
		// Drop a crew duplicate of the new primary so the (role, technician)
		// invariant survives reassignment
		if a.TechnicianID == technicianID && a.Role == model.RoleCrew {
			continue
		}
		next = append(next, a)
	}
	return next
}

func applyPatch(job model.Job, patch JobPatch) model.Job {
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.StartTime != nil {
		job.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		job.EndTime = *patch.EndTime
	}
	if patch.Notes != nil {
		job.Metadata.Notes = *patch.Notes
	}
	return job
}

func cloneTechnicians(m map[string]model.Technician) map[string]model.Technician {
	next := make(map[string]model.Technician, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}

func cloneJobs(m map[string]model.Job) map[string]model.Job {
	next := make(map[string]model.Job, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}
