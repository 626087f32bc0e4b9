// Package report produces daily and range productivity summaries by a
// single pass over the activity log.
package report

import (
	"sort"
	"time"

	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/store"
	"github.com/josephgoksu/TimeWing/types"
)

const dateLayout = "2006-01-02"

// DailySummary aggregates the activity records of one calendar day.
// A day with no entries is a zero summary, not an error.
type DailySummary struct {
	Date                string         `json:"date"`
	TotalTasks          int            `json:"total_tasks"`
	TotalFocusedMinutes int            `json:"total_focused_time_minutes"`
	MinutesByTag        map[string]int `json:"tasks_by_tag"`
}

// RangeSummary folds DailySummary over an inclusive date range and adds
// the distinct tasks completed within it.
type RangeSummary struct {
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date"`
	TotalDays           int            `json:"total_days"`
	Days                []DailySummary `json:"days"`
	TotalFocusedMinutes int            `json:"total_focused_time_minutes"`
	MinutesByTag        map[string]int `json:"tasks_by_tag"`
	// CompletedTasks holds the distinct descriptions of tasks whose
	// completed snapshot falls inside the range.
	CompletedTasks   []string `json:"completed_tasks"`
	AvgMinutesPerDay float64  `json:"avg_time_spent_minutes_per_day"`
	AvgTasksPerDay   float64  `json:"avg_tasks_completed_per_day"`
}

// Aggregator reads log entries and produces summary statistics.
type Aggregator struct {
	store store.LogStore
}

// NewAggregator creates an aggregator over the given log store.
func NewAggregator(s store.LogStore) *Aggregator {
	return &Aggregator{store: s}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Summarize aggregates the activity records whose start time falls on the
// given calendar day. An entry carrying multiple tags contributes its full
// duration to every tag's bucket; tags are not mutually exclusive.
func (a *Aggregator) Summarize(date time.Time) (DailySummary, error) {
	summary := DailySummary{
		Date:         date.Format(dateLayout),
		MinutesByTag: map[string]int{},
	}

	entries, err := a.store.Read(func(e models.LogEntry) bool {
		return e.IsActivity() && sameDay(e.StartTime, date)
	})
	if err != nil {
		return DailySummary{}, err
	}

	taskIDs := map[string]struct{}{}
	for _, e := range entries {
		summary.TotalFocusedMinutes += e.DurationMinutes
		if e.TaskID != "" {
			taskIDs[e.TaskID] = struct{}{}
		} else {
			// Untagged entries count individually.
			summary.TotalTasks++
		}
		for _, tag := range e.Tags {
			summary.MinutesByTag[tag] += e.DurationMinutes
		}
	}
	summary.TotalTasks += len(taskIDs)
	return summary, nil
}

// SummarizeRange folds Summarize over each calendar day in the inclusive
// range, totals the focus time and tag buckets, and collects the distinct
// tasks completed within the range.
func (a *Aggregator) SummarizeRange(start, end time.Time) (RangeSummary, error) {
	startDay := startOfDay(start)
	endDay := startOfDay(end)
	if endDay.Before(startDay) {
		return RangeSummary{}, types.NewValidationError("end date must not be before start date")
	}

	summary := RangeSummary{
		StartDate:    startDay.Format(dateLayout),
		EndDate:      endDay.Format(dateLayout),
		MinutesByTag: map[string]int{},
	}

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		daily, err := a.Summarize(day)
		if err != nil {
			return RangeSummary{}, err
		}
		summary.Days = append(summary.Days, daily)
		summary.TotalFocusedMinutes += daily.TotalFocusedMinutes
		for tag, minutes := range daily.MinutesByTag {
			summary.MinutesByTag[tag] += minutes
		}
	}
	summary.TotalDays = len(summary.Days)

	completed, err := a.completedInRange(startDay, endDay)
	if err != nil {
		return RangeSummary{}, err
	}
	summary.CompletedTasks = completed

	if summary.TotalDays > 0 {
		summary.AvgMinutesPerDay = float64(summary.TotalFocusedMinutes) / float64(summary.TotalDays)
		summary.AvgTasksPerDay = float64(len(completed)) / float64(summary.TotalDays)
	}
	return summary, nil
}

// completedInRange returns the distinct descriptions of tasks with a
// completed snapshot inside [startDay, endDay]. The latest snapshot per
// task wins, matching the registry's fold.
func (a *Aggregator) completedInRange(startDay, endDay time.Time) ([]string, error) {
	entries, err := a.store.Read(func(e models.LogEntry) bool {
		if !e.IsSnapshot() || e.Status != models.StatusCompleted {
			return false
		}
		day := startOfDay(e.StartTime)
		return !day.Before(startDay) && !day.After(endDay)
	})
	if err != nil {
		return nil, err
	}

	byID := map[string]string{}
	for _, e := range entries {
		byID[e.TaskID] = e.Description
	}
	descriptions := make([]string, 0, len(byID))
	for _, d := range byID {
		descriptions = append(descriptions, d)
	}
	sort.Strings(descriptions)
	return descriptions, nil
}
