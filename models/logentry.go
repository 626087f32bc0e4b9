package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// TagSnapshot marks a log entry as a task snapshot rather than an
// activity record.
const TagSnapshot = "task_snapshot"

// CSVHeader lists the columns of the activity log file. The first eight
// columns capture the task's field state at the time the entry was written;
// the remaining four describe the entry itself. For snapshots the entry
// times match the task's updatedAt and the duration is zero.
var CSVHeader = []string{
	"id", "description", "priority", "due_time", "type", "status",
	"created_at", "updated_at",
	"log_start_time", "log_end_time", "log_duration_minutes", "log_tags",
}

const timeLayout = time.RFC3339Nano

// LogEntry is one immutable record in the append-only activity log.
// Entries are never rewritten or deleted; all current state is derived by
// folding entries forward.
type LogEntry struct {
	TaskID          string
	Description     string
	Priority        int
	DueTime         *time.Time
	Type            string
	Status          TaskStatus
	TaskCreatedAt   time.Time
	TaskUpdatedAt   time.Time
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Tags            []string
}

// IsSnapshot reports whether the entry captures a task's field state
// (zero duration, tagged task_snapshot).
func (e LogEntry) IsSnapshot() bool {
	return e.DurationMinutes == 0 && e.HasTag(TagSnapshot)
}

// IsActivity reports whether the entry represents elapsed focused time.
func (e LogEntry) IsActivity() bool {
	return e.DurationMinutes > 0
}

// HasTag reports whether the entry carries the given tag.
func (e LogEntry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Task reconstructs the task state captured by this entry.
func (e LogEntry) Task() Task {
	return Task{
		ID:          e.TaskID,
		Description: e.Description,
		Priority:    e.Priority,
		DueTime:     e.DueTime,
		Type:        e.Type,
		Status:      e.Status,
		CreatedAt:   e.TaskCreatedAt,
		UpdatedAt:   e.TaskUpdatedAt,
	}
}

// NewSnapshotEntry records the task's full field state at its updatedAt
// time, with zero duration.
func NewSnapshotEntry(t Task) LogEntry {
	return LogEntry{
		TaskID:        t.ID,
		Description:   t.Description,
		Priority:      t.Priority,
		DueTime:       t.DueTime,
		Type:          t.Type,
		Status:        t.Status,
		TaskCreatedAt: t.CreatedAt,
		TaskUpdatedAt: t.UpdatedAt,
		StartTime:     t.UpdatedAt,
		EndTime:       t.UpdatedAt,
		Tags:          []string{TagSnapshot},
	}
}

// Record serializes the entry to a CSV row matching CSVHeader.
func (e LogEntry) Record() []string {
	due := ""
	if e.DueTime != nil {
		due = e.DueTime.Format(timeLayout)
	}
	taskCreated := ""
	if !e.TaskCreatedAt.IsZero() {
		taskCreated = e.TaskCreatedAt.Format(timeLayout)
	}
	taskUpdated := ""
	if !e.TaskUpdatedAt.IsZero() {
		taskUpdated = e.TaskUpdatedAt.Format(timeLayout)
	}
	return []string{
		e.TaskID,
		e.Description,
		strconv.Itoa(e.Priority),
		due,
		e.Type,
		string(e.Status),
		taskCreated,
		taskUpdated,
		e.StartTime.Format(timeLayout),
		e.EndTime.Format(timeLayout),
		strconv.Itoa(e.DurationMinutes),
		JoinTags(e.Tags),
	}
}

// EntryFromRecord parses a CSV row produced by Record.
func EntryFromRecord(rec []string) (LogEntry, error) {
	if len(rec) != len(CSVHeader) {
		return LogEntry{}, fmt.Errorf("expected %d columns, got %d", len(CSVHeader), len(rec))
	}

	var e LogEntry
	e.TaskID = rec[0]
	e.Description = rec[1]

	if rec[2] != "" {
		p, err := strconv.Atoi(rec[2])
		if err != nil {
			return LogEntry{}, fmt.Errorf("parse priority %q: %w", rec[2], err)
		}
		e.Priority = p
	}

	if rec[3] != "" {
		due, err := time.Parse(timeLayout, rec[3])
		if err != nil {
			return LogEntry{}, fmt.Errorf("parse due_time %q: %w", rec[3], err)
		}
		e.DueTime = &due
	}

	e.Type = rec[4]
	e.Status = TaskStatus(rec[5])

	var err error
	if rec[6] != "" {
		if e.TaskCreatedAt, err = time.Parse(timeLayout, rec[6]); err != nil {
			return LogEntry{}, fmt.Errorf("parse created_at %q: %w", rec[6], err)
		}
	}
	if rec[7] != "" {
		if e.TaskUpdatedAt, err = time.Parse(timeLayout, rec[7]); err != nil {
			return LogEntry{}, fmt.Errorf("parse updated_at %q: %w", rec[7], err)
		}
	}
	if e.StartTime, err = time.Parse(timeLayout, rec[8]); err != nil {
		return LogEntry{}, fmt.Errorf("parse log_start_time %q: %w", rec[8], err)
	}
	if e.EndTime, err = time.Parse(timeLayout, rec[9]); err != nil {
		return LogEntry{}, fmt.Errorf("parse log_end_time %q: %w", rec[9], err)
	}

	dur, err := strconv.Atoi(rec[10])
	if err != nil {
		return LogEntry{}, fmt.Errorf("parse log_duration_minutes %q: %w", rec[10], err)
	}
	e.DurationMinutes = dur

	e.Tags = SplitTags(rec[11])
	return e, nil
}

// JoinTags renders a tag set as the comma-delimited log_tags column.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags parses the log_tags column. An empty column means no tags.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
