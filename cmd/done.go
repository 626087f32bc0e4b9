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
	"github.com/josephgoksu/TimeWing/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed. When the task has at least two hours of
logged focus time, TimeWing asks for a short reflection and appends it to
the task reports file. Without an ID an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	registry, logStore, err := GetRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	var t models.Task
	if len(args) == 1 {
		t, err = resolveTask(registry, args[0])
	} else {
		t, err = selectTaskInteractive(registry, task.ViewOptions{}, "Select a task to complete")
	}
	if err != nil {
		if errors.Is(err, ErrNoTasksFound) {
			cmd.Println("No tasks to complete.")
			return nil
		}
		return err
	}

	completed := models.StatusCompleted
	updated, err := registry.Update(t.ID, task.FieldChanges{Status: &completed})
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("%s Completed task %s: %s\n", ui.StyleSuccess.Render("✔"), ui.ShortID(updated.ID), updated.Description)

	if err := maybePromptBigTaskReport(registry, updated.ID); err != nil {
		PrintError("Could not save the task report", err)
	}
	return nil
}

// maybePromptBigTaskReport asks for reflection notes and appends a report
// section when the task is completed with enough logged time.
func maybePromptBigTaskReport(registry *task.Registry, id string) error {
	eligible, err := registry.BigTaskEligible(id)
	if err != nil || !eligible {
		return err
	}

	t, err := registry.Get(id)
	if err != nil {
		return err
	}
	total, err := registry.LoggedMinutes(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s You logged %s on this task. Time for a quick retrospective.\n",
		ui.StyleWarning.Render("★"), store.FormatMinutes(total))

	prompt := promptui.Prompt{
		Label: "What went well, what would you change",
	}
	notes, err := prompt.Run()
	if err != nil {
		// Interrupting the prompt skips the report, nothing else.
		return nil
	}

	reports := store.NewReportStore(afero.NewOsFs(), GetReportsFilePath())
	if err := reports.SaveCompletionReport(t, notes, total); err != nil {
		return err
	}
	fmt.Printf("%s Report for task %s saved to %s\n", ui.StyleSuccess.Render("✔"), ui.ShortID(id), GetReportsFilePath())
	return nil
}
