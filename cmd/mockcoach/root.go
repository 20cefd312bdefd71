package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mockcoach",
	Short: "MockCoach checks and simulates mock orchestration plans",
	Long: `MockCoach runs the setup and assertion callbacks of a chain of collaborators in order.
This tool validates plan files describing such chains and simulates their steps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Plan failures have already been reported line by line.
		if !errors.Is(err, cli.ErrPlanFailed) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("profile", "", "Override the validation profile of the plans (strict, legacy)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every callback and window transition")
}

// globalOptions reads the persistent flags and builds the logger.
func globalOptions(cmd *cobra.Command) (cli.Options, *slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	profile, _ := cmd.Flags().GetString("profile")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := cli.Options{LogLevel: level, Profile: profile, Verbose: verbose}
	if verbose && level == "warn" {
		opts.LogLevel = "info"
	}
	logger, err := cli.CreateLogger(opts)
	if err != nil {
		return opts, nil, err
	}
	return opts, logger, nil
}
