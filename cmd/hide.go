package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/stegano/internal/envelope"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/PolarWolf314/stegano/internal/ui"
	"github.com/PolarWolf314/stegano/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	hideInput          string
	hideOutput         string
	hideText           string
	hidePassword       string
	hidePromptPassword bool
	hideIterations     int
	hideDryRun         bool
)

func init() {
	hideCmd.Flags().StringVarP(&hideInput, "input", "i", "", "cover image to hide text in")
	hideCmd.Flags().StringVarP(&hideOutput, "output", "o", "", "image to write (.png, .bmp or .tiff)")
	hideCmd.Flags().StringVarP(&hideText, "text", "t", "", "file containing the text to hide (- for stdin)")
	hideCmd.Flags().StringVarP(&hidePassword, "password", "p", "", "encrypt the text with this password")
	hideCmd.Flags().BoolVar(&hidePromptPassword, "prompt-password", false, "prompt for the password without echo")
	hideCmd.Flags().IntVar(&hideIterations, "iterations", 0, "PBKDF2 iterations (default from config)")
	hideCmd.Flags().BoolVar(&hideDryRun, "dry-run", false, "check capacity without writing the output image")

	_ = hideCmd.MarkFlagRequired("input")
	_ = hideCmd.MarkFlagRequired("output")
	_ = hideCmd.MarkFlagRequired("text")
}

func resetHideCommandState() {
	hideInput = ""
	hideOutput = ""
	hideText = ""
	hidePassword = ""
	hidePromptPassword = false
	hideIterations = 0
	hideDryRun = false
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hides text inside an image",
	Long: `Hides the contents of a text file in the pixels of an image.

When a password is given the text is first encrypted (AES-256-CBC with a
PBKDF2-derived key) so the hidden data reveals nothing without it. The
password can come from --password, --prompt-password or STEGANO_PASSWORD.

The output must be a lossless format (.png, .bmp, .tif, .tiff). The input
image is never modified.

Examples:
  stegano hide -i cover.png -o out.png -t message.txt
  stegano hide -i cover.png -o out.png -t message.txt --prompt-password
  echo "hi" | stegano hide -i cover.png -o out.png -t -
  stegano hide -i cover.png -o out.png -t message.txt --dry-run`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hide command")

		password, err := resolvePassword(hidePassword, hidePromptPassword, true)
		if err != nil {
			fmt.Println(formatError(err))
			return err
		}
		defer envelope.ClearBytes(password)

		spinner, cleanup := startSpinner("Hiding text...", verbose)
		defer cleanup()

		opts := workflows.ConcealOptions{
			InputImage:  hideInput,
			OutputImage: hideOutput,
			TextFile:    hideText,
			Password:    password,
			Iterations:  iterationsOrDefault(hideIterations),
			DryRun:      hideDryRun,
			Audit:       auditEnabled(),
		}
		Logger.Debugf("Conceal options: input=%s output=%s text=%s encrypted=%t iterations=%d dry-run=%t",
			opts.InputImage, opts.OutputImage, opts.TextFile, len(password) > 0, opts.Iterations, opts.DryRun)

		result, err := workflows.Conceal(context.Background(), opts)
		if err != nil {
			Logger.Errorf("Conceal failed: %v", err)
			spinner.FinalMSG = formatError(err)
			return err
		}

		Logger.Infof("Payload is %d bytes (%d required bits, %d available)",
			result.PayloadBytes, result.RequiredBits, result.CapacityBits)

		if result.InsufficientCapacity {
			spinner.FinalMSG = ui.Cross() + " Image is too small to hold this text\n" +
				"Needs " + ui.Highlight.Sprint(fmt.Sprintf("%d bits", result.RequiredBits)) +
				", image holds " + ui.Highlight.Sprint(fmt.Sprintf("%d bits", result.CapacityBits)) + "\n" +
				ui.Arrow() + " Use a larger image or shorter text. No output was written"
			return fmt.Errorf("%w: need %d bits, image holds %d",
				serrors.ErrInsufficientCapacity, result.RequiredBits, result.CapacityBits)
		}

		if result.DryRun {
			spinner.FinalMSG = ui.Check() + " Text fits: " +
				ui.Highlight.Sprint(ui.FormatBytes(result.PayloadBytes)) + " of " +
				ui.Highlight.Sprint(ui.FormatBytes(result.CapacityBits/8)) + " available\n" +
				ui.Muted.Sprint("Dry run, no files were written")
			return nil
		}

		msg := ui.Check() + " Text hidden in " + ui.Path.Sprint(result.OutputImage)
		if result.Encrypted {
			msg += " " + ui.Muted.Sprint("encrypted")
		}
		spinner.FinalMSG = msg
		return nil
	},
}
