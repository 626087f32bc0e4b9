package types

// AppConfig holds the unified application configuration, loaded by viper
// from config file, environment variables, and flags.
type AppConfig struct {
	Project  ProjectConfig  `mapstructure:"project" validate:"required"`
	Pomodoro PomodoroConfig `mapstructure:"pomodoro" validate:"required"`
	Verbose  bool           `mapstructure:"verbose"`
}

// ProjectConfig describes where TimeWing keeps its files.
type ProjectConfig struct {
	// RootDir is the per-project directory, e.g. ".timewing".
	RootDir string `mapstructure:"rootDir" validate:"required"`
	// DataDir is the data directory inside RootDir.
	DataDir string `mapstructure:"dataDir" validate:"required"`
	// LogFile is the CSV activity log filename inside DataDir.
	LogFile string `mapstructure:"logFile" validate:"required"`
	// ReportsFile is the markdown task reports filename inside DataDir.
	ReportsFile string `mapstructure:"reportsFile" validate:"required"`
}

// PomodoroConfig holds the interval durations in minutes.
type PomodoroConfig struct {
	WorkMinutes       int `mapstructure:"workMinutes" validate:"required,gt=0"`
	ShortBreakMinutes int `mapstructure:"shortBreakMinutes" validate:"required,gt=0"`
	LongBreakMinutes  int `mapstructure:"longBreakMinutes" validate:"required,gt=0"`
}
