package main

import (
	"os"

	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <plan>",
	Short: "Simulate a plan",
	Long:  `Builds the chain of a plan with recording callbacks and applies its steps, stopping at the first unexpected outcome.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, logger, err := globalOptions(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		metrics, _ := cmd.Flags().GetBool("metrics")

		return cli.Run(os.Stdout, args[0], opts, logger, cli.RunOptions{JSON: asJSON, Metrics: metrics})
	},
}

func init() {
	runCmd.Flags().Bool("json", false, "Print the simulation result as JSON")
	runCmd.Flags().Bool("metrics", false, "Print the collected metrics in the Prometheus text format")
	rootCmd.AddCommand(runCmd)
}
