package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/stegano/internal/envelope"
	"github.com/PolarWolf314/stegano/internal/ui"
	"github.com/PolarWolf314/stegano/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	unhideInput          string
	unhideOutput         string
	unhidePassword       string
	unhidePromptPassword bool
	unhideIterations     int
)

func init() {
	unhideCmd.Flags().StringVarP(&unhideInput, "input", "i", "", "image carrying hidden text")
	unhideCmd.Flags().StringVarP(&unhideOutput, "output", "o", "", "file to write the text to (- for stdout, default from config)")
	unhideCmd.Flags().StringVarP(&unhidePassword, "password", "p", "", "decrypt the text with this password")
	unhideCmd.Flags().BoolVar(&unhidePromptPassword, "prompt-password", false, "prompt for the password without echo")
	unhideCmd.Flags().IntVar(&unhideIterations, "iterations", 0, "PBKDF2 iterations (default from config)")

	_ = unhideCmd.MarkFlagRequired("input")
}

func resetUnhideCommandState() {
	unhideInput = ""
	unhideOutput = ""
	unhidePassword = ""
	unhidePromptPassword = false
	unhideIterations = 0
}

var unhideCmd = &cobra.Command{
	Use:   "unhide",
	Short: "Recovers text hidden inside an image",
	Long: `Extracts text hidden by 'stegano hide' and writes it to a file.

If the text was hidden with a password, the same password (and iteration
count) must be supplied. The destination defaults to reveal.output from the
config file (secret.txt unless changed); use -o - to print to stdout.

Examples:
  stegano unhide -i out.png
  stegano unhide -i out.png -o message.txt --prompt-password
  stegano unhide -i out.png -o -`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unhide command")

		password, err := resolvePassword(unhidePassword, unhidePromptPassword, false)
		if err != nil {
			fmt.Println(formatError(err))
			return err
		}
		defer envelope.ClearBytes(password)

		output := unhideOutput
		if output == "" && config != nil {
			output = config.Reveal.Output
		}

		spinner, cleanup := startSpinner("Recovering hidden text...", verbose)
		defer cleanup()

		opts := workflows.RevealOptions{
			InputImage: unhideInput,
			OutputPath: output,
			Password:   password,
			Iterations: iterationsOrDefault(unhideIterations),
			Audit:      auditEnabled(),
		}
		Logger.Debugf("Reveal options: input=%s output=%s encrypted=%t iterations=%d",
			opts.InputImage, opts.OutputPath, len(password) > 0, opts.Iterations)

		result, err := workflows.Reveal(context.Background(), opts)
		if err != nil {
			Logger.Errorf("Reveal failed: %v", err)
			spinner.FinalMSG = formatError(err)
			return err
		}

		if result.Envelope != nil {
			Logger.Debugf("Envelope: salt=%s iv=%s ciphertext=%d bytes (%d blocks)",
				result.Envelope.Salt, result.Envelope.IV, result.Envelope.CiphertextLen, result.Envelope.Blocks)
		}

		if result.OutputPath == "" {
			// Printed after the spinner stops so the text is not interleaved with it.
			spinner.FinalMSG = result.Text
			return nil
		}

		msg := ui.Check() + " Hidden text written to " + ui.Path.Sprint(result.OutputPath)
		if result.Decrypted {
			msg += " " + ui.Muted.Sprint("decrypted")
		}
		spinner.FinalMSG = msg
		return nil
	},
}
