package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/stegano/internal/configs"
	"github.com/google/uuid"
)

// Outcome values recorded in Entry.Outcome.
const (
	OutcomeOK                   = "ok"
	OutcomeInsufficientCapacity = "insufficient_capacity"
	OutcomeError                = "error"
)

// Entry represents a single audit log entry. Passwords, plaintext and
// envelopes are never recorded.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // conceal or reveal.

	Input     string `json:"input,omitempty"`  // Image read.
	Output    string `json:"output,omitempty"` // Image or text file written.
	Encrypted bool   `json:"encrypted"`        // Whether a password was used.
	Bytes     int    `json:"bytes,omitempty"`  // Payload length embedded or extracted.
	Outcome   string `json:"outcome"`
	Error     string `json:"error,omitempty"`
}

// New returns an entry for op with ID populated.
func New(op string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Operation: op,
		Outcome:   OutcomeOK,
	}
}

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(entry Entry) {
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.AuditLogPath()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
