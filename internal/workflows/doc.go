// Package workflows provides high-level orchestration for stegano commands.
//
// Workflows coordinate the envelope codec, the stego package, file I/O and
// the audit log to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves configuration and passwords
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Conceal: reads text, optionally encrypts it, and hides it in an image
//   - Reveal: extracts hidden text, optionally decrypts it, and writes it to
//     the destination chosen by the caller
//   - Capacity: reports how much text each matching image can carry
//   - Log: reads and filters the audit log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. A cover image that is too small is not an error: Conceal
// reports it through ConcealResult.InsufficientCapacity and writes nothing.
//
//	result, err := workflows.Reveal(ctx, opts)
//	if errors.Is(err, serrors.ErrDecryptionFailed) {
//	    // Wrong password or corrupted image
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and check it before doing any work.
package workflows
