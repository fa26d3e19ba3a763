package cmd

import (
	"github.com/PolarWolf314/stegano/internal/configs"
	logger "github.com/PolarWolf314/stegano/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// config is the effective configuration for the running command.
	config *configs.Config
)

// Register attaches the persistent flags and every stegano subcommand to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)

		loaded, err := configs.LoadConfig()
		if err != nil && cmd.Parent() == ConfigCmd {
			// config init must still be able to replace a broken file.
			Logger.Warnf("Ignoring invalid config: %v", err)
			config = nil
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config from %s: %v", configs.ConfigPath(), err)
		}
		config = loaded
		Logger.Debugf("Config: iterations=%d, reveal.output=%s, audit=%t",
			config.Crypto.Iterations, config.Reveal.Output, config.Audit.Enabled)
		return nil
	}

	root.AddCommand(hideCmd)
	root.AddCommand(unhideCmd)
	root.AddCommand(capacityCmd)
	root.AddCommand(logCmd)
	root.AddCommand(ConfigCmd)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	config = nil
	resetHideCommandState()
	resetUnhideCommandState()
	resetCapacityCommandState()
	resetLogCommandState()
	resetConfigInitState()
	resetConfigShowState()

	// Clear Changed so flags set by one test don't leak into the next.
	for _, c := range []*cobra.Command{hideCmd, unhideCmd, capacityCmd, logCmd, configInitCmd, configShowCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
