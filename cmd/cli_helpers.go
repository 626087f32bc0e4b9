package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/types"
)

// dueTimeLayouts are accepted by the --due flag, most specific first.
var dueTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDueTime parses a --due flag value in the local timezone.
func parseDueTime(s string) (*time.Time, error) {
	for _, layout := range dueTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, types.NewValidationError(fmt.Sprintf("could not parse due time %q (expected e.g. 2006-01-02 or 2006-01-02 15:04)", s))
}

// parseDate parses a YYYY-MM-DD report date in the local timezone.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, types.NewValidationError(fmt.Sprintf("could not parse date %q (expected YYYY-MM-DD)", s))
	}
	return t, nil
}

// parseStatus validates a --status flag value against the closed enum.
func parseStatus(s string) (models.TaskStatus, error) {
	status := models.TaskStatus(strings.ToLower(s))
	switch status {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted, models.StatusDeleted:
		return status, nil
	default:
		return "", types.NewValidationError(fmt.Sprintf("unknown status %q (one of: pending, in-progress, completed, deleted)", s))
	}
}

// resolveTask finds a task by full ID or unambiguous ID prefix.
func resolveTask(registry *task.Registry, idArg string) (models.Task, error) {
	if t, err := registry.Get(idArg); err == nil {
		return t, nil
	} else if !types.IsNotFound(err) {
		return models.Task{}, err
	}

	tasks, err := registry.View(task.ViewOptions{})
	if err != nil {
		return models.Task{}, err
	}
	var matches []models.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, idArg) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, types.NewNotFoundError(fmt.Sprintf("no task with ID %s", idArg))
	default:
		return models.Task{}, types.NewValidationError(fmt.Sprintf("task ID prefix %q is ambiguous (%d matches)", idArg, len(matches)))
	}
}
