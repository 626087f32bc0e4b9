/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/josephgoksu/TimeWing/internal/report"
	"github.com/josephgoksu/TimeWing/internal/ui"
	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show productivity summaries",
}

var reportDailyCmd = &cobra.Command{
	Use:   "daily [date]",
	Short: "Summarize one day's focused time",
	Long: `Summarize the activity records of one calendar day (default: today).

Examples:
  timewing report daily
  timewing report daily 2025-10-03`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReportDaily,
}

var reportWeeklyCmd = &cobra.Command{
	Use:   "weekly [start-date]",
	Short: "Summarize a seven-day range",
	Long: `Summarize a seven-day range starting at the given date. Without an
argument the range is the last seven days ending today.

Examples:
  timewing report weekly
  timewing report weekly 2025-09-29`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReportWeekly,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportDailyCmd)
	reportCmd.AddCommand(reportWeeklyCmd)
}

func runReportDaily(cmd *cobra.Command, args []string) error {
	date := time.Now()
	if len(args) == 1 {
		var err error
		if date, err = parseDate(args[0]); err != nil {
			return err
		}
	}

	logStore, err := GetLogStore()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	summary, err := report.NewAggregator(logStore).Summarize(date)
	if err != nil {
		return fmt.Errorf("failed to build the daily summary: %w", err)
	}

	fmt.Println(ui.StyleTitle.Render("Daily summary for " + summary.Date))
	fmt.Printf("  Tasks worked on:  %d\n", summary.TotalTasks)
	fmt.Printf("  Focused time:     %d minutes\n", summary.TotalFocusedMinutes)
	printTagBuckets(summary.MinutesByTag)
	return nil
}

func runReportWeekly(cmd *cobra.Command, args []string) error {
	var start time.Time
	if len(args) == 1 {
		var err error
		if start, err = parseDate(args[0]); err != nil {
			return err
		}
	} else {
		start = time.Now().AddDate(0, 0, -6)
	}
	end := start.AddDate(0, 0, 6)

	logStore, err := GetLogStore()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	summary, err := report.NewAggregator(logStore).SummarizeRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to build the weekly summary: %w", err)
	}

	fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("Weekly summary %s to %s", summary.StartDate, summary.EndDate)))
	fmt.Printf("  Focused time:     %d minutes (%.1f min/day)\n", summary.TotalFocusedMinutes, summary.AvgMinutesPerDay)
	fmt.Printf("  Tasks completed:  %d (%.2f/day)\n", len(summary.CompletedTasks), summary.AvgTasksPerDay)
	printTagBuckets(summary.MinutesByTag)
	if len(summary.CompletedTasks) > 0 {
		fmt.Println("  Completed:")
		for _, desc := range summary.CompletedTasks {
			fmt.Printf("    %s %s\n", ui.StyleSuccess.Render("✔"), desc)
		}
	}
	return nil
}

func printTagBuckets(byTag map[string]int) {
	if len(byTag) == 0 {
		return
	}
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	fmt.Println("  By tag:")
	for _, tag := range tags {
		fmt.Printf("    %-12s %d min\n", tag, byTag[tag])
	}
}
