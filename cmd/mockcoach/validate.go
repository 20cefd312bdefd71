package main

import (
	"os"

	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan|dir>...",
	Short: "Check plan files for consistency",
	Long: `Loads each plan, checks its steps and builds its chain, reporting the topology or the first problem found.
A directory is read as a vault of markdown notes whose frontmatter holds the plan.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, logger, err := globalOptions(cmd)
		if err != nil {
			return err
		}
		return cli.Validate(cmd.Context(), os.Stdout, args, opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
