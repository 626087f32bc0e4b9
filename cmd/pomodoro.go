/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/TimeWing/internal/pomodoro"
	"github.com/josephgoksu/TimeWing/internal/ui"
	"github.com/spf13/cobra"
)

// pomodoroCmd represents the pomodoro command
var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo", "timer"},
	Short:   "Run a Pomodoro session",
	Long: `Run an interactive Pomodoro session. Each completed work interval is
logged as an activity record; breaks are not logged. Every fourth
completed work interval suggests a long break.

Keys: p pause/resume, r reset, w work, b break, s stop, q quit.

Examples:
  timewing pomodoro
  timewing pomodoro --task 3f2a
  timewing pomodoro --work 50 --short-break 10`,
	RunE: runPomodoro,
}

var (
	pomodoroTaskID     string
	pomodoroWork       int
	pomodoroShortBreak int
	pomodoroLongBreak  int
)

func init() {
	rootCmd.AddCommand(pomodoroCmd)

	pomodoroCmd.Flags().StringVar(&pomodoroTaskID, "task", "", "task ID to link the work intervals to")
	pomodoroCmd.Flags().IntVar(&pomodoroWork, "work", 0, "work interval minutes (default from config)")
	pomodoroCmd.Flags().IntVar(&pomodoroShortBreak, "short-break", 0, "short break minutes (default from config)")
	pomodoroCmd.Flags().IntVar(&pomodoroLongBreak, "long-break", 0, "long break minutes (default from config)")
}

func runPomodoro(cmd *cobra.Command, args []string) error {
	appCfg := GetConfig()
	cfg := pomodoro.Config{
		WorkMinutes:       appCfg.Pomodoro.WorkMinutes,
		ShortBreakMinutes: appCfg.Pomodoro.ShortBreakMinutes,
		LongBreakMinutes:  appCfg.Pomodoro.LongBreakMinutes,
	}
	if cmd.Flags().Changed("work") {
		cfg.WorkMinutes = pomodoroWork
	}
	if cmd.Flags().Changed("short-break") {
		cfg.ShortBreakMinutes = pomodoroShortBreak
	}
	if cmd.Flags().Changed("long-break") {
		cfg.LongBreakMinutes = pomodoroLongBreak
	}

	registry, logStore, err := GetRegistry()
	if err != nil {
		return err
	}
	defer func() { _ = logStore.Close() }()

	timer, err := pomodoro.New(cfg, registry, logStore)
	if err != nil {
		return err
	}

	taskID := ""
	if pomodoroTaskID != "" {
		t, err := resolveTask(registry, pomodoroTaskID)
		if err != nil {
			return err
		}
		taskID = t.ID
	}

	if err := timer.Start(pomodoro.IntervalWork, taskID); err != nil {
		return fmt.Errorf("failed to start the work interval: %w", err)
	}

	program := tea.NewProgram(ui.NewTimerModel(timer))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("pomodoro session failed: %w", err)
	}

	// Registries hydrate lazily, so re-fold after the session's appends.
	registry.Reload()
	if model, ok := final.(ui.TimerModel); ok {
		seen := map[string]bool{}
		for _, id := range model.BigTaskIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if err := maybePromptBigTaskReport(registry, id); err != nil {
				PrintError("Could not save the task report", err)
			}
		}
	}
	return nil
}
