package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// AuditEntry records one security-relevant event: a login, a command
// preview or a command execution.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Action    string    `json:"action"`
	Command   string    `json:"command,omitempty"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ip_address,omitempty"`
	ErrorMsg  string    `json:"error_message,omitempty"`
}

// Audit action names
const (
	ActionLogin   = "login"
	ActionPreview = "command_preview"
	ActionExecute = "command_execute"
)

// AuditLog holds a day's worth of audit entries
type AuditLog struct {
	Date    string       `json:"date"` // YYYY-MM-DD format
	Entries []AuditEntry `json:"entries"`
}

// AuditLogger persists audit entries to per-day JSON files
type AuditLogger struct {
	dataDir  string
	mutex    sync.RWMutex
	lockFile *flock.Flock
}

// NewAuditLogger creates an audit logger under dataDir
func NewAuditLogger(dataDir string) (*AuditLogger, error) {
	auditDir := filepath.Join(dataDir, "audit")

	if err := os.MkdirAll(auditDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	return &AuditLogger{
		dataDir:  auditDir,
		lockFile: flock.New(filepath.Join(auditDir, ".audit.lock")),
	}, nil
}

// LogEntry appends an audit entry to today's log file
func (l *AuditLogger) LogEntry(entry AuditEntry) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock")
	}
	defer l.lockFile.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	date := entry.Timestamp.Format("2006-01-02")
	logFile := filepath.Join(l.dataDir, fmt.Sprintf("audit_%s.json", date))

	var log AuditLog
	if data, err := os.ReadFile(logFile); err == nil {
		if err := json.Unmarshal(data, &log); err != nil {
			return fmt.Errorf("failed to parse existing log: %w", err)
		}
	} else {
		log = AuditLog{Date: date, Entries: []AuditEntry{}}
	}

	log.Entries = append(log.Entries, entry)

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	// Write to temp file first (atomic write)
	tempFile := logFile + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, logFile); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// GetEntriesForDate retrieves all audit entries for a specific date
func (l *AuditLogger) GetEntriesForDate(date string) ([]AuditEntry, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	logFile := filepath.Join(l.dataDir, fmt.Sprintf("audit_%s.json", date))

	data, err := os.ReadFile(logFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []AuditEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var log AuditLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to parse log file: %w", err)
	}

	return log.Entries, nil
}

// GetRecentEntries retrieves the most recent audit entries from the last 7 days
func (l *AuditLogger) GetRecentEntries(limit int) ([]AuditEntry, error) {
	var all []AuditEntry

	end := time.Now()
	for d := end.AddDate(0, 0, -7); !d.After(end); d = d.AddDate(0, 0, 1) {
		entries, err := l.GetEntriesForDate(d.Format("2006-01-02"))
		if err != nil {
			continue
		}
		all = append(all, entries...)
	}

	if len(all) > limit {
		return all[len(all)-limit:], nil
	}
	return all, nil
}
