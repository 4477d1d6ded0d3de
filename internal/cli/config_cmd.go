package cli

import (
	"encoding/json"
	"fmt"

	"github.com/kallberg/ach/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ach configuration",
	Long:  `Show and modify ach configuration values.`,
}

var (
	configJSONFlag bool
	configRepoFlag bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configJSONFlag, "json", false, "Output raw JSON without formatting")
	configSetCmd.Flags().BoolVar(&configRepoFlag, "repo", false, "Write to .ach/ach.jsonc in the repository instead of the user config")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, "")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Redact secrets before display.
		redacted := redactConfig(cfg)

		var data []byte
		if configJSONFlag {
			data, err = json.Marshal(redacted)
		} else {
			data, err = json.MarshalIndent(redacted, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// redactConfig returns a copy of the config with the token masked.
func redactConfig(cfg *config.Config) *config.Config {
	copy := *cfg
	if copy.ADO.PAT != "" {
		copy.ADO.PAT = "***"
	}
	return &copy
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value using a dotted key path.

The value is written to the user config (~/.config/ach/ach.jsonc), or with
--repo to .ach/ach.jsonc in the repository root. The file is created if it
does not exist.

Note: JSONC comments are not preserved on write.`,
	Example: `  ach config set remote upstream
  ach config set ado.auth_scheme bearer
  ach config set --repo ado.base_url https://tfs.example.com/tfs`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.UserConfigPath()
		if configRepoFlag {
			path = config.RepoConfigPath("")
			if path == "" {
				return fmt.Errorf("not in a git repository")
			}
		}
		if path == "" {
			return fmt.Errorf("could not determine the user config directory")
		}

		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return nil
	},
}
