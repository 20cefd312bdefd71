package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpAdapter "github.com/aretw0/mockcoach/internal/adapters/http"
	"github.com/aretw0/mockcoach/internal/adapters/redis"
)

const shutdownTimeout = 5 * time.Second

// signaled is implemented by SignalContext.
type signaled interface {
	Signal() os.Signal
}

// ServeOptions configures the plan server.
type ServeOptions struct {
	Addr string

	// RedisAddr selects a Redis result store; results stay in memory when empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ResultTTL     time.Duration
}

// Serve starts the plan API and blocks until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, w io.Writer, logger *slog.Logger, sopts ServeOptions) error {
	var serverOpts []httpAdapter.Option
	if sopts.RedisAddr != "" {
		store := redis.New(sopts.RedisAddr, sopts.RedisPassword, sopts.RedisDB, redis.WithTTL(sopts.ResultTTL))
		defer store.Close()
		if err := store.Ping(ctx); err != nil {
			return err
		}
		logger.Info("storing results in redis", "addr", sopts.RedisAddr, "ttl", sopts.ResultTTL)
		serverOpts = append(serverOpts, httpAdapter.WithStore(store))
	}

	server, err := httpAdapter.NewServer(logger, serverOpts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              sopts.Addr,
		Handler:           httpAdapter.NewHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	fmt.Fprintf(w, "Starting mockcoach server on %s\n", srv.Addr)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		if sc, ok := ctx.(signaled); ok && sc.Signal() != nil {
			logger.Info("received signal", "signal", sc.Signal())
			fmt.Fprintf(w, "\nReceived %v, start shutdown...\n", sc.Signal())
		} else {
			fmt.Fprintln(w, "\nStart shutdown...")
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(w, "mockcoach server stopped gracefully")
		return nil
	}
}
