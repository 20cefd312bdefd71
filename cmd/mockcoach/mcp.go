package main

import (
	"context"

	mcpAdapter "github.com/aretw0/mockcoach/internal/adapters/mcp"
	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes plan validation, simulation and graphs as Model Context Protocol tools, over stdio or SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := globalOptions(cmd)
		if err != nil {
			return err
		}
		sse, _ := cmd.Flags().GetBool("sse")
		port, _ := cmd.Flags().GetInt("port")

		server := mcpAdapter.NewServer(logger)
		if !sse {
			return server.ServeStdio()
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return server.ServeSSE(ctx, port)
	},
}

func init() {
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().Int("port", 8081, "Port for the SSE transport")
	rootCmd.AddCommand(mcpCmd)
}
