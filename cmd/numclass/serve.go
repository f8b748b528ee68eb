package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/number-classifier/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the number classifier HTTP API",
		Long: `Run the HTTP API until interrupted.

Routes:
  GET /                                  Welcome message
  GET /api/classify-number?number=<num>  Classify a number
  GET /health                            Health check

The listen port defaults to 5000 and honours the PORT environment variable.

Examples:
  numclass serve
  numclass serve --port 8080
  PORT=8000 numclass serve --log-format json`,
		RunE: runServe,
	}

	// Flags
	cmd.Flags().String("host", "0.0.0.0", "interface to listen on")
	cmd.Flags().IntP("port", "p", 5000, "port to listen on")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return fmt.Errorf("failed to create fact provider: %w", err)
	}

	eng := newEngine(cmd, cfg)

	slog.Info("Starting number classifier API",
		"addr", cfg.Server.Addr(),
		"fact_provider", cfg.Facts.Provider,
		"extended_properties", cfg.Classify.ExtendedProperties,
		"rate_limit_rps", cfg.Server.RateLimit.RPS)

	srv := server.New(cfg.Server, eng, fetcher).WithVersion(version)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
