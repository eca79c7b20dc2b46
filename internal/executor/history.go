package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const historySchemaVersion = "1.0.0"

// Run is one recorded LakeXpress execution.
type Run struct {
	ID         string        `json:"id"`
	Command    []string      `json:"command"`
	ExitCode   int           `json:"exit_code"`
	Success    bool          `json:"success"`
	Duration   time.Duration `json:"duration"`
	LogFile    string        `json:"log_file,omitempty"`
	ExecutedBy string        `json:"executed_by,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
}

// runLog is the on-disk shape of the execution history file.
type runLog struct {
	Version   string    `json:"version"`
	Runs      []Run     `json:"runs"`
	UpdatedAt time.Time `json:"updated_at"`
}

// History persists execution records to the filesystem. Writes are guarded
// by a file lock so concurrent service instances sharing a data directory
// do not corrupt the history file.
type History struct {
	dataDir  string
	lockFile *flock.Flock
}

// NewHistory creates an execution history store under dataDir.
func NewHistory(dataDir string) (*History, error) {
	runsDir := filepath.Join(dataDir, "runs")
	if err := os.MkdirAll(runsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}

	return &History{
		dataDir:  dataDir,
		lockFile: flock.New(filepath.Join(runsDir, ".runs.lock")),
	}, nil
}

func (h *History) filePath() string {
	return filepath.Join(h.dataDir, "runs", "runs.json")
}

// load reads the history file, returning an empty log when none exists yet.
func (h *History) load() (*runLog, error) {
	path := h.filePath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &runLog{
			Version:   historySchemaVersion,
			UpdatedAt: time.Now(),
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs file: %w", err)
	}

	var log runLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to parse runs file: %w", err)
	}
	return &log, nil
}

// save writes the history file with locking, a backup and an atomic rename.
func (h *History) save(log *runLog) error {
	path := h.filePath()

	locked, err := h.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("unable to acquire lock - another process is writing")
	}
	defer h.lockFile.Unlock()

	if _, err := os.Stat(path); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			_ = os.WriteFile(path+".backup", data, 0600)
		}
	}

	log.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Record appends one execution outcome and returns it with an assigned id.
func (h *History) Record(tokens []string, result *Result, executedBy string, startedAt time.Time) (*Run, error) {
	log, err := h.load()
	if err != nil {
		return nil, err
	}

	run := Run{
		ID:         uuid.New().String(),
		Command:    tokens,
		ExitCode:   result.ExitCode,
		Success:    result.Success(),
		Duration:   result.Duration,
		LogFile:    result.LogFile,
		ExecutedBy: executedBy,
		StartedAt:  startedAt,
	}
	log.Runs = append(log.Runs, run)

	if err := h.save(log); err != nil {
		return nil, err
	}
	return &run, nil
}

// Get returns a recorded run by id.
func (h *History) Get(id string) (*Run, error) {
	log, err := h.load()
	if err != nil {
		return nil, err
	}
	for i := range log.Runs {
		if log.Runs[i].ID == id {
			return &log.Runs[i], nil
		}
	}
	return nil, errors.New("run not found")
}

// List returns the most recent runs, newest first, up to limit. A zero or
// negative limit returns everything.
func (h *History) List(limit int) ([]Run, error) {
	log, err := h.load()
	if err != nil {
		return nil, err
	}

	runs := make([]Run, len(log.Runs))
	copy(runs, log.Runs)
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Count returns the number of recorded runs.
func (h *History) Count() (int, error) {
	log, err := h.load()
	if err != nil {
		return 0, err
	}
	return len(log.Runs), nil
}
