// Package task maintains the current view of all tasks by folding the
// append-only activity log forward: the latest snapshot per task ID wins.
// Tasks are never mutated in place; every change appends a new snapshot.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/store"
	"github.com/josephgoksu/TimeWing/types"
)

// BigTaskThresholdMinutes is the cumulative logged time at which a
// completed task becomes eligible for a reflective completion report.
const BigTaskThresholdMinutes = 120

// FieldChanges carries the fields to apply in an Update. Nil fields are
// left untouched.
type FieldChanges struct {
	Description *string
	Priority    *int
	DueTime     *time.Time
	Type        *string
	Status      *models.TaskStatus
}

// Registry is the in-memory collection of tasks, hydrated from snapshot
// log entries. The index maps task ID to its latest snapshot and is bumped
// incrementally after each successful append.
type Registry struct {
	store  store.LogStore
	latest map[string]models.Task
	loaded bool
}

// NewRegistry creates a registry backed by the given log store. The log is
// folded lazily on first use.
func NewRegistry(s store.LogStore) *Registry {
	return &Registry{
		store:  s,
		latest: make(map[string]models.Task),
	}
}

// load folds all snapshot entries forward. Entries arrive in append order,
// so a plain overwrite leaves the most recent snapshot per ID.
func (r *Registry) load() error {
	if r.loaded {
		return nil
	}
	entries, err := r.store.Read(func(e models.LogEntry) bool { return e.IsSnapshot() })
	if err != nil {
		return fmt.Errorf("failed to hydrate task registry: %w", err)
	}
	r.latest = make(map[string]models.Task, len(entries))
	for _, e := range entries {
		r.latest[e.TaskID] = e.Task()
	}
	r.loaded = true
	return nil
}

// Reload discards the index and re-folds the log on next use.
func (r *Registry) Reload() {
	r.loaded = false
	r.latest = make(map[string]models.Task)
}

// Create validates and registers a new task, appending its first snapshot.
// An empty description is a validation error. Type defaults to "work".
func (r *Registry) Create(description string, priority int, dueTime *time.Time, taskType string) (models.Task, error) {
	if err := r.load(); err != nil {
		return models.Task{}, err
	}

	if strings.TrimSpace(description) == "" {
		return models.Task{}, types.NewValidationError("task description cannot be empty")
	}
	if taskType == "" {
		taskType = "work"
	}

	t := models.NewTask(description, priority, dueTime, taskType)
	if err := models.ValidateStruct(t); err != nil {
		return models.Task{}, types.NewError(types.CodeValidation, err.Error(), nil)
	}

	if err := r.store.Append(models.NewSnapshotEntry(t)); err != nil {
		return models.Task{}, err
	}
	r.latest[t.ID] = t
	return t, nil
}

// Get returns the current view of a non-deleted task.
func (r *Registry) Get(id string) (models.Task, error) {
	if err := r.load(); err != nil {
		return models.Task{}, err
	}
	t, ok := r.latest[id]
	if !ok || t.Status == models.StatusDeleted {
		return models.Task{}, types.NewNotFoundError(fmt.Sprintf("no task with ID %s", id))
	}
	return t, nil
}

// Update applies the supplied field changes to a non-deleted task, bumps
// UpdatedAt, and appends a new snapshot. The in-memory index is only
// touched after the append succeeds, so a failed append is retryable.
func (r *Registry) Update(id string, changes FieldChanges) (models.Task, error) {
	t, err := r.Get(id)
	if err != nil {
		return models.Task{}, err
	}

	if changes.Description != nil {
		if strings.TrimSpace(*changes.Description) == "" {
			return models.Task{}, types.NewValidationError("task description cannot be empty")
		}
		t.Description = *changes.Description
	}
	if changes.Priority != nil {
		t.Priority = *changes.Priority
	}
	if changes.DueTime != nil {
		t.DueTime = changes.DueTime
	}
	if changes.Type != nil {
		t.Type = *changes.Type
	}
	if changes.Status != nil {
		t.Status = *changes.Status
	}
	t.UpdatedAt = time.Now()

	if err := models.ValidateStruct(t); err != nil {
		return models.Task{}, types.NewError(types.CodeValidation, err.Error(), nil)
	}

	if err := r.store.Append(models.NewSnapshotEntry(t)); err != nil {
		return models.Task{}, err
	}
	r.latest[t.ID] = t
	return t, nil
}

// Delete soft-deletes a task by snapshotting it with status "deleted".
// Deleting an already-deleted task is a no-op, not an error.
func (r *Registry) Delete(id string) error {
	if err := r.load(); err != nil {
		return err
	}
	t, ok := r.latest[id]
	if !ok {
		return types.NewNotFoundError(fmt.Sprintf("no task with ID %s", id))
	}
	if t.Status == models.StatusDeleted {
		return nil
	}
	deleted := models.StatusDeleted
	_, err := r.Update(id, FieldChanges{Status: &deleted})
	return err
}

// LoggedMinutes sums the durations of all activity records referencing the
// task. Only fully completed work intervals append activity records, so
// partial intervals never count.
func (r *Registry) LoggedMinutes(id string) (int, error) {
	entries, err := r.store.Read(func(e models.LogEntry) bool {
		return e.IsActivity() && e.TaskID == id
	})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.DurationMinutes
	}
	return total, nil
}

// BigTaskEligible reports whether the task is completed with at least
// BigTaskThresholdMinutes of logged time.
func (r *Registry) BigTaskEligible(id string) (bool, error) {
	if err := r.load(); err != nil {
		return false, err
	}
	t, ok := r.latest[id]
	if !ok || t.Status != models.StatusCompleted {
		return false, nil
	}
	total, err := r.LoggedMinutes(id)
	if err != nil {
		return false, err
	}
	return total >= BigTaskThresholdMinutes, nil
}
