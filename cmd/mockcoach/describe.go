package main

import (
	"os"

	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <plan>",
	Short: "Print a report of a simulated plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, logger, err := globalOptions(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")
		width, _ := cmd.Flags().GetInt("width")

		return cli.Describe(os.Stdout, args[0], opts, logger, cli.DescribeOptions{Raw: raw, Width: width})
	},
}

func init() {
	describeCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
	describeCmd.Flags().Int("width", 80, "Word wrap width of the rendered report")
	rootCmd.AddCommand(describeCmd)
}
