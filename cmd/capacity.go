package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/stegano/internal/ui"
	"github.com/PolarWolf314/stegano/internal/utils"
	"github.com/PolarWolf314/stegano/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	capacityText      string
	capacityEncrypted bool
	capacityJSON      bool
)

func init() {
	capacityCmd.Flags().StringVarP(&capacityText, "text", "t", "", "check whether this text file fits in each image")
	capacityCmd.Flags().BoolVar(&capacityEncrypted, "encrypted", false, "account for encryption overhead when checking fit")
	capacityCmd.Flags().BoolVar(&capacityJSON, "json", false, "output as JSON")
}

func resetCapacityCommandState() {
	capacityText = ""
	capacityEncrypted = false
	capacityJSON = false
}

var capacityCmd = &cobra.Command{
	Use:   "capacity <image|glob>...",
	Short: "Shows how much text images can hide",
	Long: `Reports the hidden-text capacity of each image matching the given paths
or glob patterns (** matches any number of directories).

With --text, also reports whether that file fits in each image. Add
--encrypted to account for the size of the encrypted envelope.

Examples:
  stegano capacity cover.png
  stegano capacity 'photos/**/*.png'
  stegano capacity 'photos/*.png' --text message.txt --encrypted`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting capacity command")

		opts := workflows.CapacityOptions{
			Patterns:  args,
			Encrypted: capacityEncrypted,
		}

		if capacityText != "" {
			if err := utils.RequireFile(capacityText); err != nil {
				fmt.Println(formatError(err))
				return err
			}
			info, err := os.Stat(capacityText)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to stat %s: %v", capacityText, err)
			}
			opts.TextBytes = int(info.Size())
			opts.CheckFit = true
			Logger.Debugf("Checking fit for %s (%d bytes, encrypted=%t)", capacityText, opts.TextBytes, capacityEncrypted)
		}

		spinner, cleanup := startSpinner("Measuring images...", verbose)

		result, err := workflows.Capacity(context.Background(), opts)
		if result == nil {
			spinner.FinalMSG = formatError(err)
			cleanup()
			return err
		}
		cleanup()

		if capacityJSON {
			data, jerr := json.MarshalIndent(result, "", "  ")
			if jerr != nil {
				return fmt.Errorf("failed to marshal capacity to JSON: %w", jerr)
			}
			fmt.Println(string(data))
		} else {
			outputCapacityTable(result)
		}

		if err != nil {
			// Some images could not be read; the rest were reported above.
			Logger.WarnfAlways("%v", err)
			return err
		}
		return nil
	},
}

func outputCapacityTable(result *workflows.CapacityResult) {
	for _, img := range result.Images {
		line := fmt.Sprintf("%-40s  %5dx%-5d  %10s", img.Path, img.Width, img.Height, ui.FormatBytes(img.CapacityBytes))
		if result.CheckFit {
			if img.Fits {
				line += "  " + ui.Check()
			} else {
				line += "  " + ui.Cross()
			}
		}
		fmt.Println(line)
	}

	if !result.CheckFit {
		return
	}

	fmt.Println(ui.Muted.Sprint(fmt.Sprintf("text needs %s", ui.FormatBytes(result.RequiredBytes))))

	var fitting []string
	for _, img := range result.Images {
		if img.Fits {
			fitting = append(fitting, img.Path)
		}
	}
	if len(fitting) == 0 {
		fmt.Println(ui.Cross() + " No image is large enough for this text")
		return
	}
	fmt.Printf("%d of %d images can hold the text:%s", len(fitting), len(result.Images), utils.FormatPaths(fitting))
}
