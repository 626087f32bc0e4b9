package store

import "github.com/josephgoksu/TimeWing/models"

// LogStore defines the interface for the append-only activity log.
// Entries are immutable once written; Append must never produce a partial
// record, and Read returns entries in append order.
type LogStore interface {
	// Initialize configures the store with backend-specific settings,
	// such as the log file path. It must be called before any other
	// store operation.
	Initialize(config map[string]string) error

	// Append writes one entry to the end of the log. It fails with a
	// store_io error on write failure and must not leave a partial
	// record behind.
	Append(entry models.LogEntry) error

	// Read returns entries matching the filter, in append order. A nil
	// filter returns every entry. Entries are never mutated by a read.
	Read(filter func(models.LogEntry) bool) ([]models.LogEntry, error)

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
