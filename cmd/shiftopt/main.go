package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftopt/scheduler/internal/config"
	"github.com/shiftopt/scheduler/pkg/api"
	"github.com/shiftopt/scheduler/pkg/runtime"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:     "shiftopt",
		Short:   "Shift-scheduling optimization engine",
		Version: version,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file path (YAML)")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(validateConfigCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configFile)
		},
	}
}

func validateConfigCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Load configuration and report any errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Printf("configuration OK: listening on %s:%d, log level %s\n",
				cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
			return nil
		},
	}
}

func runServe(configFile string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	svc := runtime.NewService(cfg)
	server := api.NewServer(cfg, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
