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

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a task",
	Long: `Update a task. Only the supplied flags are applied; every update
appends a new snapshot to the activity log.

Examples:
  timewing update 3f2a --priority 1
  timewing update 3f2a --description "Write and send the report" --status in-progress`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateDescription string
	updatePriority    int
	updateDue         string
	updateType        string
	updateStatus      string
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().IntVar(&updatePriority, "priority", 0, "new priority")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due time")
	updateCmd.Flags().StringVar(&updateType, "type", "", "new type")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status (pending, in-progress, completed)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	registry, logStore, err := GetRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	t, err := resolveTask(registry, args[0])
	if err != nil {
		return err
	}

	var changes task.FieldChanges
	if cmd.Flags().Changed("description") {
		changes.Description = &updateDescription
	}
	if cmd.Flags().Changed("priority") {
		changes.Priority = &updatePriority
	}
	if cmd.Flags().Changed("due") {
		due, err := parseDueTime(updateDue)
		if err != nil {
			return err
		}
		changes.DueTime = due
	}
	if cmd.Flags().Changed("type") {
		changes.Type = &updateType
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(updateStatus)
		if err != nil {
			return err
		}
		changes.Status = &status
	}

	updated, err := registry.Update(t.ID, changes)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("%s Updated task %s: %s (status: %s)\n",
		ui.StyleSuccess.Render("✔"), ui.ShortID(updated.ID), updated.Description, updated.Status)

	// Completing a big task by hand also earns a report prompt.
	if changes.Status != nil {
		if err := maybePromptBigTaskReport(registry, updated.ID); err != nil {
			PrintError("Could not save the task report", err)
		}
	}
	return nil
}
