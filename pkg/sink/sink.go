package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sherine-k/flightsim/pkg/simulation"
)

// ErrNotReset is returned when a record is appended before the store was reset
var ErrNotReset = errors.New("sink has not been reset")

// Sink durably records telemetry in arrival order
type Sink interface {
	Reset() error
	Append(record simulation.TelemetryRecord) error
	Close() error
}

var (
	_ simulation.Sink = (*FileSink)(nil)
	_ simulation.Sink = (*MemorySink)(nil)
)

// FileSink appends telemetry records to a JSON-lines file
type FileSink struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// NewFileSink creates a sink for the given path. Nothing is opened until Reset.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the location of the store
func (s *FileSink) Path() string {
	return s.path
}

// Reset truncates the store, creating it if needed
func (s *FileSink) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Truncate(0); err != nil {
			return fmt.Errorf("failed to truncate telemetry file: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create telemetry directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open telemetry file: %w", err)
	}
	s.file = file
	return nil
}

// Append writes one record as a single JSON line and syncs it to disk
func (s *FileSink) Append(record simulation.TelemetryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return ErrNotReset
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry record: %w", err)
	}

	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write telemetry record: %w", err)
	}

	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync telemetry file: %w", err)
	}
	return nil
}

// Close closes the underlying file
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}

// MemorySink keeps records in memory
type MemorySink struct {
	mu      sync.Mutex
	reset   bool
	records []simulation.TelemetryRecord
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Reset discards all records
func (m *MemorySink) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
	m.records = nil
	return nil
}

// Append stores the record
func (m *MemorySink) Append(record simulation.TelemetryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.reset {
		return ErrNotReset
	}
	m.records = append(m.records, record)
	return nil
}

// Close is a no-op
func (m *MemorySink) Close() error {
	return nil
}

// Records returns a copy of the stored records
func (m *MemorySink) Records() []simulation.TelemetryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]simulation.TelemetryRecord, len(m.records))
	copy(out, m.records)
	return out
}

// ReadRecords decodes a JSON-lines telemetry stream. Blank lines are skipped.
func ReadRecords(r io.Reader) ([]simulation.TelemetryRecord, error) {
	records := []simulation.TelemetryRecord{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record simulation.TelemetryRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse telemetry record: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read telemetry stream: %w", err)
	}
	return records, nil
}

// ReadFile loads all records from a telemetry file
func ReadFile(path string) ([]simulation.TelemetryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry file: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}
