package cli

import (
	"github.com/kallberg/ach/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "ach",
		Short: "Show the Azure DevOps pull request and work items for the checked-out commit",
		Long: `ach looks up the pull request that contains the commit currently checked out
(HEAD) in the Azure DevOps repository behind the origin remote, and lists the
work items linked to it.

The personal access token is read from ADO_PAT.`,
		Example: `  ADO_PAT=... ach
  ach --remote upstream
  ach -o json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runResolve,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Additional JSONC config file merged over user and repo config")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	}

	rootCmd.Flags().StringVar(&resolveFlags.remote, "remote", "", "Git remote to read the repository URL from (default from config, \"origin\")")
	rootCmd.Flags().StringVar(&resolveFlags.commit, "commit", "", "Commit id to look up instead of HEAD")
	rootCmd.Flags().StringVarP(&resolveFlags.output, "output", "o", "", "Output format: text, json or yaml")
	rootCmd.Flags().StringVarP(&resolveFlags.dir, "dir", "C", "", "Resolve the repository in this directory instead of the current one")

	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
