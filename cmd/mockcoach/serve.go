package main

import (
	"context"
	"os"
	"time"

	"github.com/aretw0/mockcoach/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the plan HTTP server",
	Long:  `Exposes plan validation, simulation and graphs as a JSON API, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := globalOptions(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		ttl, _ := cmd.Flags().GetDuration("result-ttl")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, os.Stdout, logger, cli.ServeOptions{
			Addr:          ":" + port,
			RedisAddr:     redisAddr,
			RedisPassword: redisPassword,
			RedisDB:       redisDB,
			ResultTTL:     ttl,
		})
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Store simulation results in Redis at this address instead of memory")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("result-ttl", time.Hour, "Expiration of results stored in Redis (0 keeps them)")
	rootCmd.AddCommand(serveCmd)
}
