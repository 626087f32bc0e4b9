package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/store"
	"github.com/josephgoksu/TimeWing/types"
)

func newTestAggregator(t *testing.T) (*Aggregator, store.LogStore) {
	t.Helper()
	s := store.NewCSVLogStore()
	if err := s.Initialize(map[string]string{"logFile": filepath.Join(t.TempDir(), "log.csv")}); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewAggregator(s), s
}

func appendActivity(t *testing.T, s store.LogStore, taskID string, start time.Time, minutes int, tags ...string) {
	t.Helper()
	err := s.Append(models.LogEntry{
		TaskID:          taskID,
		Description:     "Focused work",
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Tags:            tags,
	})
	if err != nil {
		t.Fatalf("append activity: %v", err)
	}
}

func TestSummarize_EmptyDay(t *testing.T) {
	a, _ := newTestAggregator(t)

	got, err := a.Summarize(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got.Date != "2025-06-01" {
		t.Errorf("date = %q", got.Date)
	}
	if got.TotalTasks != 0 || got.TotalFocusedMinutes != 0 || len(got.MinutesByTag) != 0 {
		t.Errorf("empty day not zero: %+v", got)
	}
}

func TestSummarize_SingleInterval(t *testing.T) {
	a, s := newTestAggregator(t)

	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	appendActivity(t, s, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", day, 25, "work")

	got, err := a.Summarize(day)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got.TotalTasks != 1 {
		t.Errorf("total tasks = %d, want 1", got.TotalTasks)
	}
	if got.TotalFocusedMinutes != 25 {
		t.Errorf("total minutes = %d, want 25", got.TotalFocusedMinutes)
	}
	if got.MinutesByTag["work"] != 25 || len(got.MinutesByTag) != 1 {
		t.Errorf("tag buckets = %v, want {work: 25}", got.MinutesByTag)
	}
}

func TestSummarize_TagBucketsAndDistinctTasks(t *testing.T) {
	a, s := newTestAggregator(t)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	taskA := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	taskB := "9a7b8c6d-1e2f-43a4-b5c6-d7e8f9a0b1c2"

	// Two intervals on the same task count the task once.
	appendActivity(t, s, taskA, day.Add(9*time.Hour), 25, "work")
	appendActivity(t, s, taskA, day.Add(10*time.Hour), 25, "work")
	// A multi-tag interval contributes full duration to each bucket.
	appendActivity(t, s, taskB, day.Add(11*time.Hour), 30, "work", "deep")
	// Untagged, unlinked entries count individually.
	appendActivity(t, s, "", day.Add(14*time.Hour), 10)
	// A neighboring day stays out.
	appendActivity(t, s, taskA, day.AddDate(0, 0, 1), 25, "work")

	got, err := a.Summarize(day)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got.TotalTasks != 3 {
		t.Errorf("total tasks = %d, want 3", got.TotalTasks)
	}
	if got.TotalFocusedMinutes != 90 {
		t.Errorf("total minutes = %d, want 90", got.TotalFocusedMinutes)
	}
	if got.MinutesByTag["work"] != 80 {
		t.Errorf("work bucket = %d, want 80", got.MinutesByTag["work"])
	}
	if got.MinutesByTag["deep"] != 30 {
		t.Errorf("deep bucket = %d, want 30", got.MinutesByTag["deep"])
	}
}

func TestSummarize_IgnoresSnapshots(t *testing.T) {
	a, s := newTestAggregator(t)

	registry := task.NewRegistry(s)
	if _, err := registry.Create("Only snapshots", models.PriorityMedium, nil, "work"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := a.Summarize(time.Now())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got.TotalTasks != 0 || got.TotalFocusedMinutes != 0 {
		t.Errorf("snapshots counted as activity: %+v", got)
	}
}

func TestSummarizeRange(t *testing.T) {
	a, s := newTestAggregator(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	registry := task.NewRegistry(s)
	created, err := registry.Create("Ship release", models.PriorityHigh, nil, "work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	appendActivity(t, s, created.ID, start.Add(9*time.Hour), 25, "work")
	appendActivity(t, s, created.ID, start.AddDate(0, 0, 2).Add(9*time.Hour), 50, "work")
	// Outside the range.
	appendActivity(t, s, created.ID, start.AddDate(0, 0, 10), 25, "work")

	// Completion snapshot inside the range. The snapshot's times come from
	// the task's updatedAt, which is "now"; place it explicitly instead.
	completedTask := created
	completedTask.Status = models.StatusCompleted
	completedTask.UpdatedAt = start.AddDate(0, 0, 3).Add(17 * time.Hour)
	if err := s.Append(models.NewSnapshotEntry(completedTask)); err != nil {
		t.Fatalf("append completion snapshot: %v", err)
	}

	got, err := a.SummarizeRange(start, end)
	if err != nil {
		t.Fatalf("summarize range: %v", err)
	}
	if got.TotalDays != 7 || len(got.Days) != 7 {
		t.Fatalf("days = %d/%d, want 7", got.TotalDays, len(got.Days))
	}
	if got.StartDate != "2025-06-01" || got.EndDate != "2025-06-07" {
		t.Errorf("range dates = %s..%s", got.StartDate, got.EndDate)
	}
	if got.TotalFocusedMinutes != 75 {
		t.Errorf("total minutes = %d, want 75", got.TotalFocusedMinutes)
	}
	if got.MinutesByTag["work"] != 75 {
		t.Errorf("work bucket = %d, want 75", got.MinutesByTag["work"])
	}
	if len(got.CompletedTasks) != 1 || got.CompletedTasks[0] != "Ship release" {
		t.Errorf("completed tasks = %v", got.CompletedTasks)
	}
	if got.AvgMinutesPerDay != 75.0/7 {
		t.Errorf("avg minutes/day = %v", got.AvgMinutesPerDay)
	}
	if got.AvgTasksPerDay != 1.0/7 {
		t.Errorf("avg tasks/day = %v", got.AvgTasksPerDay)
	}
}

func TestSummarizeRange_EndBeforeStart(t *testing.T) {
	a, _ := newTestAggregator(t)

	start := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	if _, err := a.SummarizeRange(start, start.AddDate(0, 0, -1)); !types.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSummarizeRange_LatestSnapshotWins(t *testing.T) {
	a, s := newTestAggregator(t)

	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	base := models.Task{
		ID:          id,
		Description: "Renamed later",
		Priority:    models.PriorityMedium,
		Type:        "work",
		Status:      models.StatusCompleted,
		CreatedAt:   day.Add(-24 * time.Hour),
		UpdatedAt:   day,
	}
	if err := s.Append(models.NewSnapshotEntry(base)); err != nil {
		t.Fatalf("append: %v", err)
	}
	renamed := base
	renamed.Description = "Final name"
	renamed.UpdatedAt = day.Add(time.Hour)
	if err := s.Append(models.NewSnapshotEntry(renamed)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := a.SummarizeRange(day, day)
	if err != nil {
		t.Fatalf("summarize range: %v", err)
	}
	if len(got.CompletedTasks) != 1 || got.CompletedTasks[0] != "Final name" {
		t.Errorf("completed tasks = %v, want [Final name]", got.CompletedTasks)
	}
}
