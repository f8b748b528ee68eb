package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/number-classifier/internal/common"
	"github.com/Veraticus/number-classifier/internal/facts"
)

// EnvPrefix is the prefix for environment variable overrides (NUMCLASS_SERVER_PORT, ...).
const EnvPrefix = "NUMCLASS"

// Config is the complete application configuration.
type Config struct {
	Facts    facts.Config   `mapstructure:"facts"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Classify ClassifyConfig `mapstructure:"classify"`
}

// LoggingConfig controls the global slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	CORS            CORSConfig      `mapstructure:"cors"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	ClassifyTimeout time.Duration   `mapstructure:"classify_timeout"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig configures the per-client token bucket. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// ClassifyConfig controls the classification engine.
type ClassifyConfig struct {
	ExtendedProperties bool `mapstructure:"extended_properties"`
}

// Addr returns the host:port the server listens on.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Configure registers defaults and environment bindings on v.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// PORT is what most hosting platforms set.
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	SetDefaults(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	fc := facts.DefaultConfig()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.classify_timeout", 10*time.Second)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit.rps", 0)
	v.SetDefault("server.rate_limit.burst", 20)

	v.SetDefault("facts.provider", fc.Provider)
	v.SetDefault("facts.base_url", fc.BaseURL)
	v.SetDefault("facts.type", fc.Type)
	v.SetDefault("facts.timeout", fc.Timeout)

	v.SetDefault("classify.extended_properties", false)
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range: %d", common.ErrInvalidConfig, c.Server.Port)
	}
	timeouts := map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"server.classify_timeout": c.Server.ClassifyTimeout,
		"facts.timeout":           c.Facts.Timeout,
	}
	for key, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, key)
		}
	}

	if c.Server.RateLimit.RPS < 0 {
		return fmt.Errorf("%w: server.rate_limit.rps must not be negative", common.ErrInvalidConfig)
	}
	if c.Server.RateLimit.RPS > 0 && c.Server.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: server.rate_limit.burst must be at least 1", common.ErrInvalidConfig)
	}

	switch strings.ToLower(c.Facts.Provider) {
	case facts.ProviderNumbersAPI, facts.ProviderStatic, facts.ProviderNone:
	default:
		return fmt.Errorf("%w: unsupported fact provider: %s", common.ErrInvalidConfig, c.Facts.Provider)
	}

	return nil
}
