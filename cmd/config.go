package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/PolarWolf314/stegano/internal/configs"
	"github.com/PolarWolf314/stegano/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitIterations int
	configInitOutput     string
	configInitNoAudit    bool
	configInitForce      bool

	configShowJSON bool
)

func init() {
	configInitCmd.Flags().IntVar(&configInitIterations, "iterations", configs.DefaultIterations, "PBKDF2 iterations for new envelopes")
	configInitCmd.Flags().StringVar(&configInitOutput, "output", configs.DefaultRevealOutput, "default file written by unhide")
	configInitCmd.Flags().BoolVar(&configInitNoAudit, "no-audit", false, "disable the audit log")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func resetConfigInitState() {
	configInitIterations = configs.DefaultIterations
	configInitOutput = configs.DefaultRevealOutput
	configInitNoAudit = false
	configInitForce = false
}

func resetConfigShowState() {
	configShowJSON = false
}

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stegano configuration",
	Long: `Provides commands for managing the user configuration file.

Settings are read from the config file and can be overridden with
environment variables:
  STEGANO_ITERATIONS   PBKDF2 iterations (crypto.iterations)
  STEGANO_OUTPUT       default unhide destination (reveal.output)
  STEGANO_AUDIT        record operations in the audit log (audit.enabled)`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file",
	Long: `Writes a config file with the given settings, or the defaults.

Examples:
  stegano config init
  stegano config init --iterations 5000 --output recovered.txt
  stegano config init --no-audit --force`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		path := configs.ConfigPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Cross() + " Config file already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Arrow() + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Logger.ErrorfAndReturn("failed to stat %s: %v", path, err)
		}

		cfg := configs.DefaultConfig()
		cfg.Crypto.Iterations = configInitIterations
		cfg.Reveal.Output = configInitOutput
		cfg.Audit.Enabled = !configInitNoAudit

		Logger.Debugf("Writing config to %s", path)
		if err := configs.SaveConfig(cfg); err != nil {
			fmt.Println(ui.Cross() + " " + err.Error())
			return err
		}

		fmt.Println(ui.Check() + " Config written to " + ui.Path.Sprint(path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration stegano will use, after applying the config
file and environment overrides.

Examples:
  stegano config show
  stegano config show --json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		cfg := config
		if cfg == nil {
			loaded, err := configs.LoadConfig()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load config: %v", err)
			}
			cfg = loaded
		}

		if configShowJSON {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(ui.Muted.Sprint("# " + configs.ConfigPath()))
		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	},
}
