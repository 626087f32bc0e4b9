package pomodoro

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/store"
	"github.com/josephgoksu/TimeWing/types"
)

func newTestTimer(t *testing.T, cfg Config) (*Timer, *task.Registry, store.LogStore) {
	t.Helper()
	s := store.NewCSVLogStore()
	if err := s.Initialize(map[string]string{"logFile": filepath.Join(t.TempDir(), "log.csv")}); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	registry := task.NewRegistry(s)
	timer, err := New(cfg, registry, s)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}
	return timer, registry, s
}

// run ticks the timer one second at a time until it produces a completion.
func run(t *testing.T, timer *Timer, maxSeconds int) *Completion {
	t.Helper()
	for i := 0; i < maxSeconds; i++ {
		c, err := timer.Tick(time.Second)
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
		if c != nil {
			return c
		}
	}
	t.Fatalf("no completion after %d seconds", maxSeconds)
	return nil
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	s := store.NewCSVLogStore()
	registry := task.NewRegistry(s)
	for _, cfg := range []Config{
		{WorkMinutes: 0, ShortBreakMinutes: 5, LongBreakMinutes: 15},
		{WorkMinutes: 25, ShortBreakMinutes: -1, LongBreakMinutes: 15},
		{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 0},
	} {
		if _, err := New(cfg, registry, s); !types.IsValidation(err) {
			t.Errorf("New(%+v): %v", cfg, err)
		}
	}
}

func TestTimer_IdleUntilStarted(t *testing.T) {
	timer, _, _ := newTestTimer(t, DefaultConfig())

	st := timer.State()
	if st.Running || st.Interval != IntervalWork || st.RemainingSeconds != 25*60 {
		t.Fatalf("unexpected idle state: %+v", st)
	}

	// Ticks before Start are no-ops.
	if c, err := timer.Tick(10 * time.Second); c != nil || err != nil {
		t.Fatalf("idle tick: %v %v", c, err)
	}
	if got := timer.State().RemainingSeconds; got != 25*60 {
		t.Errorf("idle tick consumed time: %d", got)
	}
}

func TestTimer_WorkIntervalLogsActivity(t *testing.T) {
	cfg := Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2}
	timer, registry, s := newTestTimer(t, cfg)

	created, err := registry.Create("Write report", models.PriorityHigh, nil, "work")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := timer.Start(IntervalWork, created.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Linking moves the pending task to in-progress.
	linked, err := registry.Get(created.ID)
	if err != nil {
		t.Fatalf("get linked: %v", err)
	}
	if linked.Status != models.StatusInProgress {
		t.Errorf("linked task status = %s, want in-progress", linked.Status)
	}

	c := run(t, timer, 61)
	if c.Interval != IntervalWork || c.Suggested != IntervalShortBreak {
		t.Fatalf("completion mismatch: %+v", c)
	}
	if c.Entry == nil {
		t.Fatal("work completion carries no log entry")
	}
	if c.Entry.TaskID != created.ID || c.Entry.DurationMinutes != 1 {
		t.Errorf("entry mismatch: %+v", c.Entry)
	}
	if len(c.Entry.Tags) != 1 || c.Entry.Tags[0] != "work" {
		t.Errorf("entry tags = %v, want [work]", c.Entry.Tags)
	}

	activities, err := s.Read(func(e models.LogEntry) bool { return e.IsActivity() })
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if len(activities) != 1 || activities[0].TaskID != created.ID {
		t.Fatalf("expected one activity record, got %+v", activities)
	}

	st := timer.State()
	if st.Running {
		t.Error("timer should await an explicit start after completion")
	}
	if st.CompletedIntervals != 1 {
		t.Errorf("completed = %d, want 1", st.CompletedIntervals)
	}
	if st.Interval != IntervalShortBreak || st.RemainingSeconds != 60 {
		t.Errorf("timer not positioned on suggested break: %+v", st)
	}
}

func TestTimer_FourthWorkIntervalSuggestsLongBreak(t *testing.T) {
	cfg := Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2}
	timer, _, _ := newTestTimer(t, cfg)

	for i := 1; i <= 4; i++ {
		if err := timer.Start(IntervalWork, ""); err != nil {
			t.Fatalf("start work %d: %v", i, err)
		}
		c := run(t, timer, 61)
		want := IntervalShortBreak
		if i == 4 {
			want = IntervalLongBreak
		}
		if c.Suggested != want {
			t.Errorf("after %d intervals, suggested %s, want %s", i, c.Suggested, want)
		}
	}
	if got := timer.State().CompletedIntervals; got != 4 {
		t.Errorf("completed = %d, want 4", got)
	}
}

func TestTimer_BreakCompletionSuggestsWork(t *testing.T) {
	cfg := Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2}
	timer, _, s := newTestTimer(t, cfg)

	if err := timer.Start(IntervalShortBreak, ""); err != nil {
		t.Fatalf("start break: %v", err)
	}
	c := run(t, timer, 61)
	if c.Interval != IntervalShortBreak || c.Suggested != IntervalWork {
		t.Fatalf("break completion mismatch: %+v", c)
	}
	if c.Entry != nil {
		t.Error("break completion should not log activity")
	}

	entries, err := s.Read(nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("break wrote %d entries", len(entries))
	}
	if got := timer.State().CompletedIntervals; got != 0 {
		t.Errorf("break bumped completed count to %d", got)
	}
}

func TestTimer_PauseResume(t *testing.T) {
	timer, _, _ := newTestTimer(t, DefaultConfig())

	if err := timer.Start(IntervalWork, ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := timer.Tick(10 * time.Second); err != nil {
		t.Fatalf("tick: %v", err)
	}

	timer.Pause()
	remaining := timer.State().RemainingSeconds
	if remaining != 25*60-10 {
		t.Fatalf("remaining = %d", remaining)
	}

	// Elapsed time while paused is not consumed.
	if _, err := timer.Tick(30 * time.Second); err != nil {
		t.Fatalf("paused tick: %v", err)
	}
	if got := timer.State().RemainingSeconds; got != remaining {
		t.Errorf("paused tick consumed time: %d", got)
	}

	// Pausing again is a silent no-op.
	timer.Pause()

	if err := timer.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := timer.Resume(); !types.IsInvalidTransition(err) {
		t.Errorf("resume while running: %v", err)
	}
	if _, err := timer.Tick(time.Second); err != nil {
		t.Fatalf("tick after resume: %v", err)
	}
	if got := timer.State().RemainingSeconds; got != remaining-1 {
		t.Errorf("remaining after resume = %d, want %d", got, remaining-1)
	}
}

func TestTimer_Reset(t *testing.T) {
	timer, _, _ := newTestTimer(t, DefaultConfig())

	if err := timer.Start(IntervalWork, ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := timer.Tick(90 * time.Second); err != nil {
		t.Fatalf("tick: %v", err)
	}

	timer.Reset()
	st := timer.State()
	if st.Running {
		t.Error("reset should pause the timer")
	}
	if st.RemainingSeconds != 25*60 {
		t.Errorf("reset remaining = %d, want full duration", st.RemainingSeconds)
	}
	if st.Interval != IntervalWork {
		t.Errorf("reset changed interval to %s", st.Interval)
	}
}

func TestTimer_StopPreservesCompletedCount(t *testing.T) {
	cfg := Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2}
	timer, registry, _ := newTestTimer(t, cfg)

	created, err := registry.Create("Linked", models.PriorityMedium, nil, "work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := timer.Start(IntervalWork, created.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	run(t, timer, 61)

	if err := timer.Start(IntervalShortBreak, ""); err != nil {
		t.Fatalf("start break: %v", err)
	}
	timer.Stop()

	st := timer.State()
	if st.Interval != IntervalWork || st.Running || st.RemainingSeconds != 60 {
		t.Errorf("stop did not return to idle work state: %+v", st)
	}
	if st.TaskID != "" {
		t.Error("stop should unlink the task")
	}
	if st.CompletedIntervals != 1 {
		t.Errorf("stop dropped the completed count: %d", st.CompletedIntervals)
	}
}

func TestTimer_StartUnknownInterval(t *testing.T) {
	timer, _, _ := newTestTimer(t, DefaultConfig())
	if err := timer.Start("nap", ""); !types.IsValidation(err) {
		t.Errorf("unknown interval: %v", err)
	}
}

func TestTimer_StartWithUnknownTask(t *testing.T) {
	timer, _, _ := newTestTimer(t, DefaultConfig())
	if err := timer.Start(IntervalWork, "3f2504e0-4f89-41d3-9a0c-0305e82c3301"); !types.IsNotFound(err) {
		t.Errorf("unknown task link: %v", err)
	}
}

func TestTimer_BigTaskSignal(t *testing.T) {
	cfg := Config{WorkMinutes: 60, ShortBreakMinutes: 5, LongBreakMinutes: 15}
	timer, registry, s := newTestTimer(t, cfg)

	created, err := registry.Create("Marathon", models.PriorityHigh, nil, "work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Pre-log an hour so the interval about to finish crosses the threshold.
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	err = s.Append(models.LogEntry{
		TaskID:          created.ID,
		Description:     created.Description,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Tags:            []string{"work"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	completed := models.StatusCompleted
	if _, err := registry.Update(created.ID, task.FieldChanges{Status: &completed}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := timer.Start(IntervalWork, created.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	c, err := timer.Tick(60 * time.Minute)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if c == nil {
		t.Fatal("no completion")
	}
	if !c.BigTask {
		t.Error("expected big-task signal at 120 logged minutes on a completed task")
	}
}

// failingStore fails Append on demand to exercise completion retries.
type failingStore struct {
	store.LogStore
	fail bool
}

func (f *failingStore) Append(entry models.LogEntry) error {
	if f.fail {
		return types.NewStoreIOError("disk full", errors.New("no space left on device"))
	}
	return f.LogStore.Append(entry)
}

func TestTimer_FailedAppendIsRetryable(t *testing.T) {
	s := store.NewCSVLogStore()
	if err := s.Initialize(map[string]string{"logFile": filepath.Join(t.TempDir(), "log.csv")}); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	fs := &failingStore{LogStore: s}
	registry := task.NewRegistry(fs)

	cfg := Config{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2}
	timer, err := New(cfg, registry, fs)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}

	if err := timer.Start(IntervalWork, ""); err != nil {
		t.Fatalf("start: %v", err)
	}

	fs.fail = true
	if _, err := timer.Tick(60 * time.Second); !types.IsStoreIO(err) {
		t.Fatalf("expected store error, got %v", err)
	}

	st := timer.State()
	if !st.Running || st.RemainingSeconds != 0 {
		t.Fatalf("failed completion should leave the timer running at zero: %+v", st)
	}
	if st.CompletedIntervals != 0 {
		t.Errorf("failed completion bumped the count: %d", st.CompletedIntervals)
	}

	fs.fail = false
	c, err := timer.Tick(time.Second)
	if err != nil {
		t.Fatalf("retry tick: %v", err)
	}
	if c == nil || c.Interval != IntervalWork {
		t.Fatalf("retry did not complete the interval: %+v", c)
	}
	if got := timer.State().CompletedIntervals; got != 1 {
		t.Errorf("completed = %d, want 1", got)
	}

	activities, err := s.Read(func(e models.LogEntry) bool { return e.IsActivity() })
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(activities) != 1 {
		t.Errorf("expected exactly one activity record, got %d", len(activities))
	}
}
