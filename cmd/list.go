/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/internal/ui"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, optionally filtered and sorted.

Deleted tasks are hidden unless --all is given or --status deleted is
requested explicitly.

Examples:
  timewing list
  timewing list --status pending --sort priority
  timewing list --type work --due 2025-10-03
  timewing list --all --sort updated_at --order desc`,
	RunE: runList,
}

var (
	listPriority int
	listDue      string
	listType     string
	listStatus   string
	listAll      bool
	listSortBy   string
	listOrder    string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listPriority, "priority", 0, "filter by priority")
	listCmd.Flags().StringVar(&listDue, "due", "", "filter by due date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listType, "type", "", "filter by type (case-insensitive)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include deleted tasks")
	listCmd.Flags().StringVar(&listSortBy, "sort", task.SortByCreatedAt, "sort field (priority, due_time, created_at, updated_at, description)")
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "sort order (asc, desc)")
}

func runList(cmd *cobra.Command, args []string) error {
	opts := task.ViewOptions{
		Type:           listType,
		IncludeDeleted: listAll,
		SortBy:         listSortBy,
		SortOrder:      listOrder,
	}
	if cmd.Flags().Changed("priority") {
		opts.Priority = &listPriority
	}
	if listDue != "" {
		due, err := parseDueTime(listDue)
		if err != nil {
			return err
		}
		opts.DueDate = due
	}
	if listStatus != "" {
		status, err := parseStatus(listStatus)
		if err != nil {
			return err
		}
		opts.Status = &status
	}

	registry, logStore, err := GetRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	tasks, err := registry.View(opts)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		cmd.Println("No tasks found.")
		cmd.Println("Add one with: timewing add \"Your task here\"")
		return nil
	}

	fmt.Print(ui.RenderTaskList(tasks))
	return nil
}
