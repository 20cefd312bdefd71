package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mockcoach"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mockcoach",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mockcoach version %s\n", strings.TrimSpace(mockcoach.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
