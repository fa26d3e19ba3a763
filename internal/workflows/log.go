package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/stegano/internal/audit"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
)

const entryTimeLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation (comma-separated, e.g. "conceal,reveal").
	Operations string

	// Outcome filters entries by outcome (ok, insufficient_capacity, error).
	Outcome string

	// Since filters entries on or after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries on or before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if a date filter is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(audit.LogPath())
	if os.IsNotExist(err) {
		return nil, serrors.ErrNoFilesFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	entries, err := audit.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Operations != "" {
		filtered = filterEntries(filtered, fieldIn(opts.Operations, func(e audit.Entry) string { return e.Operation }))
	}

	if opts.Outcome != "" {
		filtered = filterEntries(filtered, fieldIn(opts.Outcome, func(e audit.Entry) string { return e.Outcome }))
	}

	if opts.Since != "" {
		since, err := time.Parse(time.DateOnly, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", serrors.ErrInvalidDateFormat)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.Before(since)
		})
	}

	if opts.Until != "" {
		until, err := time.Parse(time.DateOnly, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", serrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.After(until)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// fieldIn matches entries whose field is one of the comma-separated values,
// case-insensitively.
func fieldIn(values string, field func(audit.Entry) string) func(audit.Entry) bool {
	set := make(map[string]bool)
	for _, v := range strings.Split(values, ",") {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return func(e audit.Entry) bool {
		return set[strings.ToLower(field(e))]
	}
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse(entryTimeLayout, e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}
