package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/types"
)

const (
	defaultLogFile = "timewing_log.csv"
	logFileKey     = "logFile"
)

// CSVLogStore implements LogStore on one append-only CSV file. A header row
// is written when the file is new or empty; every Append after that adds
// exactly one record. The file is guarded by a file-level lock so a record
// is either fully written or not written at all.
type CSVLogStore struct {
	filePath string
	flk      *flock.Flock
}

// NewCSVLogStore creates a new instance. Initialize must be called before use.
func NewCSVLogStore() *CSVLogStore {
	return &CSVLogStore{}
}

// Initialize configures the store. It expects a 'logFile' key in the config
// map with the path to the CSV log; if absent it defaults to
// 'timewing_log.csv' in the current directory. The parent directory is
// created if needed.
func (s *CSVLogStore) Initialize(config map[string]string) error {
	if val, ok := config[logFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultLogFile
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return types.NewStoreIOError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	s.flk = flock.New(s.filePath + ".lock")
	return nil
}

// Append writes one entry to the end of the log. The whole record (and the
// header, for a new file) is buffered and flushed in a single write so a
// failed append never leaves a partial record.
func (s *CSVLogStore) Append(entry models.LogEntry) error {
	if s.flk == nil {
		return types.NewStoreIOError("store not initialized", nil)
	}
	if err := s.flk.Lock(); err != nil {
		return types.NewStoreIOError(fmt.Sprintf("could not lock log file %s", s.filePath), err)
	}
	defer func() { _ = s.flk.Unlock() }()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return types.NewStoreIOError(fmt.Sprintf("could not open log file %s", s.filePath), err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return types.NewStoreIOError(fmt.Sprintf("could not stat log file %s", s.filePath), err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(models.CSVHeader); err != nil {
			return types.NewStoreIOError("failed to encode log header", err)
		}
	}
	if err := w.Write(entry.Record()); err != nil {
		return types.NewStoreIOError("failed to encode log entry", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return types.NewStoreIOError("failed to encode log entry", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return types.NewStoreIOError(fmt.Sprintf("failed to append to log file %s", s.filePath), err)
	}
	return nil
}

// Read returns entries matching the filter, in append order. A missing log
// file yields an empty result. Malformed rows are skipped with a notice on
// stderr rather than failing the whole read; the original file tolerated
// hand-edited rows and this keeps that behavior.
func (s *CSVLogStore) Read(filter func(models.LogEntry) bool) ([]models.LogEntry, error) {
	if s.flk == nil {
		return nil, types.NewStoreIOError("store not initialized", nil)
	}
	if err := s.flk.RLock(); err != nil {
		return nil, types.NewStoreIOError(fmt.Sprintf("could not lock log file %s", s.filePath), err)
	}
	defer func() { _ = s.flk.Unlock() }()

	f, err := os.Open(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.LogEntry{}, nil
		}
		return nil, types.NewStoreIOError(fmt.Sprintf("could not open log file %s", s.filePath), err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []models.LogEntry{}, nil
		}
		return nil, types.NewStoreIOError(fmt.Sprintf("could not read log file %s", s.filePath), err)
	}
	if len(header) != len(models.CSVHeader) {
		return nil, types.NewStoreIOError(fmt.Sprintf("log file %s has a mismatched header", s.filePath), nil)
	}

	var entries []models.LogEntry
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				fmt.Fprintf(os.Stderr, "Skipping malformed log row %d in %s: %v\n", line, s.filePath, err)
				continue
			}
			return nil, types.NewStoreIOError(fmt.Sprintf("could not read log file %s", s.filePath), err)
		}
		entry, perr := models.EntryFromRecord(rec)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Skipping malformed log row %d in %s: %v\n", line, s.filePath, perr)
			continue
		}
		if filter == nil || filter(entry) {
			entries = append(entries, entry)
		}
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	return entries, nil
}

// Close releases the file lock. flock.Unlock is idempotent.
func (s *CSVLogStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
