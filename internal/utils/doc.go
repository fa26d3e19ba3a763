// Package utils provides shared helpers for the stegano CLI.
//
// # Filesystem Utilities
//
//   - RequireFile: reports ErrFileNotFound for missing inputs
//   - WriteTextFile: writes recovered text with owner-only permissions
//   - FormatPaths: formats file paths for human-readable output
//
// # I/O Utilities
//
//   - ReadStdin: reads text piped into the command
//
// # Terminal Utilities
//
//   - ReadPassphrase, ReadPassphraseConfirm: hidden password prompts
package utils
