package main

import (
	"os"

	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <plan>",
	Short: "Visualize the chain of a plan",
	Long:  `Generates a Mermaid flowchart of the chain, optionally highlighting the positions a simulation visited.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, logger, err := globalOptions(cmd)
		if err != nil {
			return err
		}
		overlay, _ := cmd.Flags().GetBool("overlay")
		return cli.Graph(os.Stdout, args[0], opts, logger, overlay)
	},
}

func init() {
	graphCmd.Flags().Bool("overlay", false, "Highlight visited and failed positions")
	rootCmd.AddCommand(graphCmd)
}
