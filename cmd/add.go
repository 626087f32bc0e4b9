/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/TimeWing/internal/ui"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Long: `Add a new task to the activity log.

Examples:
  timewing add "Write the quarterly report" --priority 1 --due 2025-10-03
  timewing add "Dentist appointment" --type personal`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addPriority int
	addDue      string
	addType     string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().IntVar(&addPriority, "priority", models.PriorityMedium, "priority (1=high, 2=medium, 3=low)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due time (e.g. 2006-01-02 or '2006-01-02 15:04')")
	addCmd.Flags().StringVar(&addType, "type", "work", "task type/category")
}

func runAdd(cmd *cobra.Command, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))

	var due *time.Time
	if addDue != "" {
		var err error
		due, err = parseDueTime(addDue)
		if err != nil {
			return err
		}
	}

	registry, logStore, err := GetRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	t, err := registry.Create(description, addPriority, due, addType)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("%s Added task %s: %s\n", ui.StyleSuccess.Render("✔"), ui.ShortID(t.ID), t.Description)
	return nil
}
