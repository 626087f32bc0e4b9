/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/internal/ui"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Soft-delete a task",
	Long: `Mark a task as deleted. The task's log entries are kept; deletion is a
status change recorded as one more snapshot. Deleting an already-deleted
task is a no-op. Without an ID an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	registry, logStore, err := GetRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	var t models.Task
	if len(args) == 1 {
		t, err = resolveTask(registry, args[0])
	} else {
		t, err = selectTaskInteractive(registry, task.ViewOptions{}, "Select a task to delete")
	}
	if err != nil {
		if errors.Is(err, ErrNoTasksFound) {
			cmd.Println("No tasks to delete.")
			return nil
		}
		return err
	}

	if err := registry.Delete(t.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("%s Deleted task %s: %s\n", ui.StyleSuccess.Render("✔"), ui.ShortID(t.ID), t.Description)
	return nil
}
