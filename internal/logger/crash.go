// Package logger provides crash logging and recovery for TimeWing.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs relative to the
	// project root dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep.
	MaxCrashLogs = 10
)

// CrashContext stores context for crash logging.
type CrashContext struct {
	mu       sync.RWMutex
	command  string
	version  string
	basePath string
}

// globalContext is the singleton crash context.
var globalContext = &CrashContext{}

// SetBasePath sets the base path for crash logs (typically the .timewing
// directory).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// RecoverPanic writes a crash log and re-raises nothing; call it deferred
// from main. Returns true when a panic was handled.
func RecoverPanic() bool {
	r := recover()
	if r == nil {
		return false
	}

	globalContext.mu.RLock()
	command := globalContext.command
	version := globalContext.version
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = "."
	}
	dir := filepath.Join(basePath, CrashLogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
		return true
	}

	name := fmt.Sprintf("crash_%s.log", time.Now().Format("20060102_150405"))
	content := fmt.Sprintf("time: %s\nversion: %s\ncommand: %s\npanic: %v\n\n%s\n",
		time.Now().Format(time.RFC3339), version, command, r, debug.Stack())

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
		return true
	}

	fmt.Fprintf(os.Stderr, "TimeWing crashed: %v\nA crash log was written to %s\n", r, path)
	pruneCrashLogs(dir)
	return true
}

// pruneCrashLogs keeps only the newest MaxCrashLogs files.
func pruneCrashLogs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) <= MaxCrashLogs {
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-MaxCrashLogs] {
		_ = os.Remove(filepath.Join(dir, name))
	}
}
