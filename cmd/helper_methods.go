package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/PolarWolf314/stegano/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatError turns an error from a workflow into a user-facing message,
// with a hint where one helps.
func formatError(err error) string {
	cross := ui.Cross() + " "
	arrow := "\n" + ui.Arrow() + " "

	switch {
	case errors.Is(err, serrors.ErrFileNotFound):
		return cross + "File not found: " + ui.Path.Sprint(err.Error())

	case errors.Is(err, serrors.ErrDecryptionFailed):
		return cross + "Failed to decrypt the hidden text" +
			arrow + "Check the password and " + ui.Flag.Sprint("--iterations") + " match the ones used to hide it"

	case errors.Is(err, serrors.ErrMalformedEnvelope):
		return cross + "The hidden text is not an encrypted envelope" +
			arrow + "It may have been hidden without a password, try again without one"

	case errors.Is(err, serrors.ErrEncoding):
		return cross + "Text is not valid UTF-8: " + err.Error()

	case errors.Is(err, serrors.ErrNoPayload):
		return cross + "No hidden text found in this image"

	case errors.Is(err, serrors.ErrUnsupportedFormat):
		return cross + err.Error()

	case errors.Is(err, serrors.ErrSameFile):
		return cross + "Output image would overwrite the input image" +
			arrow + "Choose a different " + ui.Flag.Sprint("--output") + " path"

	case errors.Is(err, serrors.ErrPasswordRequired):
		return cross + "Could not read a password: " + err.Error() +
			arrow + "Pass " + ui.Flag.Sprint("--password") + " or set " + ui.Code.Sprint(passwordEnvVar)

	case errors.Is(err, serrors.ErrInvalidIterations):
		return cross + "Iteration count must be at least 1"

	case errors.Is(err, serrors.ErrRandomSourceUnavailable):
		return cross + "System random source is unavailable: " + err.Error()

	case errors.Is(err, serrors.ErrNoFilesFound):
		return cross + "No files matched: " + err.Error()

	default:
		return cross + err.Error()
	}
}
