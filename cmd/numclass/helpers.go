package main

import (
	"context"
	"errors"
	"log/slog"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/number-classifier/internal/common"
	"github.com/Veraticus/number-classifier/internal/config"
	"github.com/Veraticus/number-classifier/internal/engine"
	"github.com/Veraticus/number-classifier/internal/facts"
	"github.com/Veraticus/number-classifier/internal/service"
)

// loadConfig reads the typed configuration from the global viper instance.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Check the config file and NUMCLASS_* environment variables", err)
	}
	return cfg, nil
}

// newEngine builds the engine, letting an explicit --extended flag override
// classify.extended_properties.
func newEngine(cmd *cobra.Command, cfg *config.Config) *engine.ClassificationEngine {
	extended := cfg.Classify.ExtendedProperties
	if flag := cmd.Flags().Lookup("extended"); flag != nil && flag.Changed {
		extended, _ = cmd.Flags().GetBool("extended")
	}
	return engine.NewWithConfig(engine.Config{ExtendedProperties: extended})
}

// fetchFact returns a fun fact for n, or the placeholder when the provider
// is disabled or the fetch fails.
func fetchFact(ctx context.Context, fetcher service.FactFetcher, n *big.Int) string {
	if fetcher == nil {
		return service.FactPlaceholder
	}
	fact, err := fetcher.Fact(ctx, n)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Warn("Fun fact unavailable", "error", err)
		}
		return service.FactPlaceholder
	}
	return fact
}

// newFetcher builds the configured fact provider.
func newFetcher(cfg *config.Config) (service.FactFetcher, error) {
	return facts.NewFetcher(cfg.Facts)
}
