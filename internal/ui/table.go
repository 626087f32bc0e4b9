package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TimeWing/models"
)

var statusStyles = map[models.TaskStatus]lipgloss.Style{
	models.StatusPending:    StyleSubtle,
	models.StatusInProgress: StyleWarning,
	models.StatusCompleted:  StyleSuccess,
	models.StatusDeleted:    StyleError,
}

func priorityLabel(p int) string {
	switch p {
	case models.PriorityHigh:
		return "high"
	case models.PriorityMedium:
		return "medium"
	case models.PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("%d", p)
	}
}

// RenderTaskList renders tasks as an aligned table with the short ID,
// description, priority, type, due date, and status.
func RenderTaskList(tasks []models.Task) string {
	var b strings.Builder

	header := fmt.Sprintf("%-9s %-40s %-8s %-10s %-11s %s",
		"ID", "DESCRIPTION", "PRIORITY", "TYPE", "DUE", "STATUS")
	b.WriteString(StyleHeader.Render(header))
	b.WriteString("\n")

	for _, t := range tasks {
		desc := t.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		due := "-"
		if t.DueTime != nil {
			due = t.DueTime.Format("2006-01-02")
		}
		style, ok := statusStyles[t.Status]
		if !ok {
			style = StyleSubtle
		}
		row := fmt.Sprintf(" %-8s %-40s %-8s %-10s %-11s %s",
			ShortID(t.ID), desc, priorityLabel(t.Priority), t.Type, due, style.Render(string(t.Status)))
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// ShortID returns the first uuid segment, enough to disambiguate a
// personal-scale task list.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
