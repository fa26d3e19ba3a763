package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/stegano/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stegano",
	Short: "Stegano - hide text inside images, optionally encrypted.",
	Long: `Stegano hides text in the pixels of an image and recovers it later.

Text can be encrypted with a password before it is hidden, so the image
reveals nothing without it.

Usage:
  stegano <command> [flags]

Available Commands:
  hide       Hide text inside an image
  unhide     Recover text hidden inside an image
  capacity   Show how much text images can hide
  log        View the audit log
  config     Manage configuration

Run 'stegano help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("stegano", "", true).Print()
		fmt.Println("\nWelcome to Stegano! Run 'stegano --help' to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
