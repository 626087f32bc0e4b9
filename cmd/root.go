/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/TimeWing/internal/logger"
	"github.com/josephgoksu/TimeWing/internal/task"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timewing",
	Short: "TimeWing tracks your tasks and Pomodoro work intervals.",
	Long: `TimeWing is a personal productivity CLI. It keeps your tasks in an
append-only activity log, runs Pomodoro work/break intervals linked to
tasks, and produces daily and weekly focus summaries.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	if len(os.Args) > 1 {
		logger.SetCommand(os.Args[1])
	}
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.timewing/.timewing.yaml or $HOME/.timewing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetLogFilePath returns the full path to the CSV activity log.
func GetLogFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.DataDir, config.Project.LogFile)
}

// GetReportsFilePath returns the full path to the markdown reports file.
func GetReportsFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.DataDir, config.Project.ReportsFile)
}

// GetLogStore initializes and returns the activity log store.
func GetLogStore() (store.LogStore, error) {
	s := store.NewCSVLogStore()
	logFilePath := GetLogFilePath()

	err := s.Initialize(map[string]string{
		"logFile": logFilePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log store at %s: %w", logFilePath, err)
	}
	return s, nil
}

// GetRegistry returns a task registry over a freshly initialized log store.
// The caller owns closing the returned store.
func GetRegistry() (*task.Registry, store.LogStore, error) {
	s, err := GetLogStore()
	if err != nil {
		return nil, nil, err
	}
	return task.NewRegistry(s), s, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided view options.
func selectTaskInteractive(registry *task.Registry, opts task.ViewOptions, label string) (models.Task, error) {
	tasks, err := registry.View(opts)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Description | cyan }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Description | faint }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Description | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Priority:\t" | faint }} {{ .Priority }}
{{ "Type:\t" | faint }} {{ .Type }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		name := strings.ToLower(t.Description)
		id := t.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return tasks[i], nil
}
