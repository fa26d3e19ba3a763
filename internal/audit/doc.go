// Package audit records a local history of conceal and reveal operations.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/stegano/audit.jsonl
//
// Each entry contains:
//   - A random UUID and a timestamp (RFC3339 with microseconds, UTC)
//   - Operation name (conceal or reveal)
//   - Input and output paths, payload size and whether a password was used
//   - Outcome (ok, insufficient_capacity or error) and the error message
//
// Passwords, plaintext and envelopes are never written.
//
// # Usage
//
//	entry := audit.New("conceal")
//	entry.Input = "cover.png"
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display.
// Malformed entries are silently skipped to handle partial writes.
package audit
