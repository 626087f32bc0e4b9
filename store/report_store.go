package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/types"
	"github.com/spf13/afero"
)

// ReportStore appends one markdown section per big-task completion report
// to an append-only reports file. Sections are never rewritten.
type ReportStore struct {
	fs       afero.Fs
	filePath string
	now      func() time.Time
}

// NewReportStore creates a report store writing to filePath on the given
// filesystem. Pass afero.NewOsFs() outside of tests.
func NewReportStore(fsys afero.Fs, filePath string) *ReportStore {
	return &ReportStore{fs: fsys, filePath: filePath, now: time.Now}
}

// SaveCompletionReport appends a reflective summary section for a completed
// big task: id, description, completion date, total logged time, and the
// user's free-text notes.
func (s *ReportStore) SaveCompletionReport(task models.Task, notes string, totalMinutes int) error {
	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return types.NewStoreIOError(fmt.Sprintf("failed to create reports directory %s", dir), err)
		}
	}

	due := "N/A"
	if task.DueTime != nil {
		due = task.DueTime.Format("2006-01-02 15:04")
	}

	section := fmt.Sprintf(
		"## Task Report: %s - %s\n"+
			"**Completed On:** %s\n"+
			"**Status:** %s\n"+
			"**Priority:** %d, **Type:** %s\n"+
			"**Originally Due:** %s\n"+
			"**Total Logged Time:** %s\n\n"+
			"### Summary/Notes:\n%s\n\n"+
			"---\n\n",
		task.ID, task.Description,
		s.now().Format("2006-01-02 15:04:05"),
		task.Status,
		task.Priority, task.Type,
		due,
		FormatMinutes(totalMinutes),
		notes,
	)

	f, err := s.fs.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return types.NewStoreIOError(fmt.Sprintf("could not open reports file %s", s.filePath), err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write([]byte(section)); err != nil {
		return types.NewStoreIOError(fmt.Sprintf("failed to append to reports file %s", s.filePath), err)
	}
	return nil
}

// FormatMinutes renders a minute total as "X hours Y minutes".
func FormatMinutes(total int) string {
	return fmt.Sprintf("%d hours %d minutes", total/60, total%60)
}
