// Package pomodoro implements the interval state machine: a four-state
// countdown over work, short-break, and long-break intervals with an
// orthogonal running/paused flag. The machine owns the authoritative
// remaining-seconds value; the presentation layer drives it through a
// one-second cooperative Tick and persists nothing itself. The only
// durable output is the activity record appended on each completed work
// interval.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/store"
	"github.com/josephgoksu/TimeWing/types"
)

// IntervalType is one Pomodoro timer period.
type IntervalType string

const (
	IntervalWork       IntervalType = "work"
	IntervalShortBreak IntervalType = "short_break"
	IntervalLongBreak  IntervalType = "long_break"
)

// Display returns a human-readable interval name.
func (i IntervalType) Display() string {
	switch i {
	case IntervalWork:
		return "Work"
	case IntervalShortBreak:
		return "Short break"
	case IntervalLongBreak:
		return "Long break"
	default:
		return string(i)
	}
}

// Work intervals per long-break cycle.
const intervalsPerCycle = 4

// Config holds the interval durations, supplied at session start.
type Config struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
}

// DefaultConfig returns the classic 25/5/15 durations.
func DefaultConfig() Config {
	return Config{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 15}
}

// Validate checks that every duration is a positive integer.
func (c Config) Validate() error {
	if c.WorkMinutes <= 0 || c.ShortBreakMinutes <= 0 || c.LongBreakMinutes <= 0 {
		return types.NewValidationError("interval durations must be positive integers")
	}
	return nil
}

// Minutes returns the configured duration for an interval type.
func (c Config) Minutes(i IntervalType) int {
	switch i {
	case IntervalShortBreak:
		return c.ShortBreakMinutes
	case IntervalLongBreak:
		return c.LongBreakMinutes
	default:
		return c.WorkMinutes
	}
}

// State is a read-only snapshot of the machine for rendering.
type State struct {
	Interval           IntervalType
	Running            bool
	RemainingSeconds   int
	CompletedIntervals int
	TaskID             string
}

// Completion is surfaced when an interval reaches zero. The machine never
// auto-starts the next interval; it suggests one and waits for Start.
type Completion struct {
	Interval  IntervalType
	Suggested IntervalType
	TaskID    string
	// BigTask is a one-shot signal that the linked task is completed
	// with enough logged time for a completion report. The machine does
	// not collect the report text.
	BigTask bool
	// Entry is the activity record appended for a work interval, nil
	// for breaks.
	Entry *models.LogEntry
}

// Timer is the Pomodoro interval state machine. It is not safe for
// concurrent use; one session is active at a time and all mutation happens
// between Tick poll points.
type Timer struct {
	cfg      Config
	registry *task.Registry
	store    store.LogStore

	interval  IntervalType
	running   bool
	remaining int // seconds
	completed int
	taskID    string
	startedAt time.Time // wall-clock start of the current work interval

	now func() time.Time
}

// New creates an idle machine on the work interval at full duration.
func New(cfg Config, registry *task.Registry, logStore store.LogStore) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Timer{
		cfg:       cfg,
		registry:  registry,
		store:     logStore,
		interval:  IntervalWork,
		remaining: cfg.WorkMinutes * 60,
		now:       time.Now,
	}, nil
}

// Config returns the session's interval durations.
func (t *Timer) Config() Config {
	return t.cfg
}

// State returns a snapshot of the machine.
func (t *Timer) State() State {
	return State{
		Interval:           t.interval,
		Running:            t.running,
		RemainingSeconds:   t.remaining,
		CompletedIntervals: t.completed,
		TaskID:             t.taskID,
	}
}

// Start begins the given interval from any configuration, resetting the
// countdown to its full configured duration. Supplying a task ID on a work
// interval links the task and moves it from pending to in-progress.
func (t *Timer) Start(interval IntervalType, taskID string) error {
	switch interval {
	case IntervalWork, IntervalShortBreak, IntervalLongBreak:
	default:
		return types.NewValidationError(fmt.Sprintf("unknown interval type %q", interval))
	}

	if interval == IntervalWork && taskID != "" {
		linked, err := t.registry.Get(taskID)
		if err != nil {
			return err
		}
		if linked.Status == models.StatusPending {
			inProgress := models.StatusInProgress
			if _, err := t.registry.Update(taskID, task.FieldChanges{Status: &inProgress}); err != nil {
				return err
			}
		}
		t.taskID = taskID
	}

	t.interval = interval
	t.remaining = t.cfg.Minutes(interval) * 60
	t.running = true
	if interval == IntervalWork {
		t.startedAt = t.now()
	}
	return nil
}

// Pause halts the countdown, preserving the remaining time. Pausing an
// already-paused timer is a silent no-op.
func (t *Timer) Pause() {
	t.running = false
}

// Resume continues a paused countdown. Resuming while running or with no
// time remaining is an invalid transition: reported, state unchanged.
func (t *Timer) Resume() error {
	if t.running {
		return types.NewInvalidTransitionError("timer is already running")
	}
	if t.remaining <= 0 {
		return types.NewInvalidTransitionError("no time remaining; start a new interval")
	}
	t.running = true
	return nil
}

// Reset restores the full configured duration of the current interval type
// and pauses. The interval type, completed count, and task link are
// unchanged.
func (t *Timer) Reset() {
	t.remaining = t.cfg.Minutes(t.interval) * 60
	t.running = false
}

// Stop returns the machine to its idle configuration: work interval at
// full duration, not running, task unlinked. The completed-interval count
// is preserved.
func (t *Timer) Stop() {
	t.interval = IntervalWork
	t.remaining = t.cfg.WorkMinutes * 60
	t.running = false
	t.taskID = ""
}

// Tick advances the countdown by the elapsed wall-clock time. While
// paused it is a no-op. The remaining time never goes negative; reaching
// zero triggers completion handling and returns the Completion event.
//
// If appending the work interval's activity record fails, the machine is
// left running at zero so a later Tick can retry the completion.
func (t *Timer) Tick(elapsed time.Duration) (*Completion, error) {
	if !t.running {
		return nil, nil
	}
	t.remaining -= int(elapsed / time.Second)
	if t.remaining > 0 {
		return nil, nil
	}
	t.remaining = 0

	if t.interval == IntervalWork {
		return t.finishWork()
	}
	return t.finishBreak(), nil
}

func (t *Timer) finishWork() (*Completion, error) {
	end := t.now()
	entry := models.LogEntry{
		Description:     "Focused work",
		StartTime:       t.startedAt,
		EndTime:         end,
		DurationMinutes: t.cfg.WorkMinutes,
	}
	if t.startedAt.IsZero() {
		entry.StartTime = end.Add(-time.Duration(t.cfg.WorkMinutes) * time.Minute)
	}

	if t.taskID != "" {
		linked, err := t.registry.Get(t.taskID)
		if err == nil {
			entry.TaskID = linked.ID
			entry.Description = linked.Description
			entry.Priority = linked.Priority
			entry.DueTime = linked.DueTime
			entry.Type = linked.Type
			entry.Status = linked.Status
			entry.TaskCreatedAt = linked.CreatedAt
			entry.TaskUpdatedAt = linked.UpdatedAt
			if linked.Type != "" {
				entry.Tags = []string{linked.Type}
			}
		} else if !types.IsNotFound(err) {
			return nil, err
		}
		// A task deleted mid-interval logs as generic focused work.
	}

	if err := t.store.Append(entry); err != nil {
		return nil, err
	}

	t.completed++
	t.running = false

	suggested := IntervalShortBreak
	if t.completed%intervalsPerCycle == 0 {
		suggested = IntervalLongBreak
	}

	completion := &Completion{
		Interval:  IntervalWork,
		Suggested: suggested,
		TaskID:    entry.TaskID,
		Entry:     &entry,
	}

	if entry.TaskID != "" {
		eligible, err := t.registry.BigTaskEligible(entry.TaskID)
		if err != nil {
			return completion, err
		}
		completion.BigTask = eligible
	}

	// Pre-position the countdown on the suggested break; the next
	// interval still requires an explicit Start.
	t.interval = suggested
	t.remaining = t.cfg.Minutes(suggested) * 60
	t.startedAt = time.Time{}

	return completion, nil
}

func (t *Timer) finishBreak() *Completion {
	finished := t.interval
	t.interval = IntervalWork
	t.remaining = t.cfg.WorkMinutes * 60
	t.running = false
	return &Completion{
		Interval:  finished,
		Suggested: IntervalWork,
		TaskID:    t.taskID,
	}
}
