/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a TimeWing project in the current directory",
	Long: `Create the .timewing directory with a default configuration file.
Existing configuration is left untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	config := GetConfig()
	rootDir := config.Project.RootDir
	configPath := filepath.Join(rootDir, configName+".yaml")

	if _, err := os.Stat(configPath); err == nil {
		cmd.Printf("Config already exists at %s\n", configPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Join(rootDir, config.Project.DataDir), 0o755); err != nil {
		return fmt.Errorf("failed to create project directory %s: %w", rootDir, err)
	}

	defaults := map[string]any{
		"project": map[string]any{
			"rootDir":     config.Project.RootDir,
			"dataDir":     config.Project.DataDir,
			"logFile":     config.Project.LogFile,
			"reportsFile": config.Project.ReportsFile,
		},
		"pomodoro": map[string]any{
			"workMinutes":       config.Pomodoro.WorkMinutes,
			"shortBreakMinutes": config.Pomodoro.ShortBreakMinutes,
			"longBreakMinutes":  config.Pomodoro.LongBreakMinutes,
		},
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	cmd.Printf("Initialized TimeWing project. Config written to %s\n", configPath)
	return nil
}
