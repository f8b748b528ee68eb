package facts

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/number-classifier/internal/common"
	"github.com/Veraticus/number-classifier/internal/service"
)

// Provider names accepted in configuration.
const (
	ProviderNumbersAPI = "numbersapi"
	ProviderStatic     = "static"
	ProviderNone       = "none"
)

// Config holds fun fact provider settings.
type Config struct {
	Provider string        `mapstructure:"provider"`
	BaseURL  string        `mapstructure:"base_url"`
	Type     string        `mapstructure:"type"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default provider configuration.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderNumbersAPI,
		BaseURL:  DefaultBaseURL,
		Type:     "math",
		Timeout:  5 * time.Second,
	}
}

// NewFetcher creates the fact fetcher named by cfg.Provider.
// It returns nil, nil for the "none" provider.
func NewFetcher(cfg Config) (service.FactFetcher, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderNumbersAPI, "":
		return newNumbersAPIClient(cfg)
	case ProviderStatic:
		return StaticFetcher{}, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unsupported fact provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}
}
