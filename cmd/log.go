package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/stegano/internal/audit"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/PolarWolf314/stegano/internal/ui"
	"github.com/PolarWolf314/stegano/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logOutcome   string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (conceal, reveal; comma-separated)")
	logCmd.Flags().StringVar(&logOutcome, "outcome", "", "filter by outcome (ok, insufficient_capacity, error)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logOutcome = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the log of hide and unhide operations.

Passwords and hidden text are never recorded, only paths, sizes and
outcomes.

Examples:
  stegano log                       # View full log
  stegano log -n 10                 # Last 10 entries
  stegano log --reverse             # Most recent first
  stegano log --operation conceal   # Only hide operations
  stegano log --outcome error       # Only failures
  stegano log --since 2024-01-01    # Filter by date
  stegano log --json                # JSON output`,
	SilenceUsage: true,
	RunE:         runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Outcome:    logOutcome,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			spinner.FinalMSG = "No audit log entries found."
		} else {
			spinner.FinalMSG = "No audit log entries found matching the filters."
		}
		return nil
	}

	if logJSON {
		data, err := json.MarshalIndent(result.Entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries to JSON: %w", err)
		}
		spinner.FinalMSG = string(data)
		return nil
	}

	spinner.FinalMSG = formatLogEntries(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, serrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations will be logged after running hide or unhide."

	case errors.Is(err, serrors.ErrInvalidDateFormat):
		return ui.Cross() + " " + err.Error()

	default:
		return ui.Cross() + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	return !errors.Is(err, serrors.ErrNoFilesFound)
}

func formatLogEntries(entries []audit.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-19s  %-8s  %-21s  %s\n", formatDateTime(e.Timestamp), e.Operation, e.Outcome, formatDetails(e))
	}
	return b.String()
}

// formatDateTime renders an entry timestamp in local time, or as-is if it
// cannot be parsed.
func formatDateTime(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		return ts
	}
	return t.Local().Format(time.DateTime)
}

func formatDetails(e audit.Entry) string {
	details := e.Input
	if e.Output != "" {
		details += " -> " + e.Output
	}
	if e.Bytes > 0 {
		details += fmt.Sprintf(" (%s)", ui.FormatBytes(e.Bytes))
	}
	if e.Encrypted {
		details += " [encrypted]"
	}
	if e.Error != "" {
		details += ": " + e.Error
	}
	return details
}
