// Package config provides configuration management for the analysis application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Quote    QuoteConfig    `mapstructure:"quote"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Position PositionConfig `mapstructure:"position"`
	UI       UIConfig       `mapstructure:"ui"`
}

// QuoteConfig holds quote-source configuration.
type QuoteConfig struct {
	BaseURL   string        `mapstructure:"base_url"`   // chart API base
	ProxyURL  string        `mapstructure:"proxy_url"`  // optional CORS-style proxy prefix
	Range     string        `mapstructure:"range"`      // e.g. "6mo"
	Interval  string        `mapstructure:"interval"`   // e.g. "1d"
	FxSymbol  string        `mapstructure:"fx_symbol"`  // home-currency-per-USD pair
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CacheConfig holds local bar-cache configuration.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	MaxAge  time.Duration `mapstructure:"max_age"` // reuse cached bars younger than this
}

// AnalysisConfig holds analysis tunables. The pipeline constants
// themselves (periods, tolerances, guardrails) are fixed; only the
// fetch window is configurable.
type AnalysisConfig struct {
	SwingWindow int `mapstructure:"swing_window"` // trailing bars scanned for swings
}

// PositionConfig holds position-sizing defaults.
type PositionConfig struct {
	DefaultRiskPercent float64 `mapstructure:"default_risk_percent"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tickerlab"
	}
	return filepath.Join(home, ".config", "tickerlab")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Quote: QuoteConfig{
			BaseURL:   "https://query1.finance.yahoo.com/v8/finance/chart/",
			Range:     "6mo",
			Interval:  "1d",
			FxSymbol:  "KRW=X",
			Timeout:   15 * time.Second,
			UserAgent: "tickerlab/0.1",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(DefaultConfigDir(), "bars.db"),
			MaxAge:  4 * time.Hour,
		},
		Analysis: AnalysisConfig{
			SwingWindow: 80,
		},
		Position: PositionConfig{
			DefaultRiskPercent: 1.0,
		},
		UI: UIConfig{
			ColorEnabled: true,
		},
	}
}

// Load loads configuration from the specified directory, falling back
// to built-in defaults when no config file exists.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("quote.base_url", cfg.Quote.BaseURL)
	v.SetDefault("quote.range", cfg.Quote.Range)
	v.SetDefault("quote.interval", cfg.Quote.Interval)
	v.SetDefault("quote.fx_symbol", cfg.Quote.FxSymbol)
	v.SetDefault("quote.timeout", cfg.Quote.Timeout)
	v.SetDefault("quote.user_agent", cfg.Quote.UserAgent)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.path", cfg.Cache.Path)
	v.SetDefault("cache.max_age", cfg.Cache.MaxAge)
	v.SetDefault("analysis.swing_window", cfg.Analysis.SwingWindow)
	v.SetDefault("position.default_risk_percent", cfg.Position.DefaultRiskPercent)
	v.SetDefault("ui.color_enabled", cfg.UI.ColorEnabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.yaml: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TICKERLAB_QUOTE_BASE_URL"); v != "" {
		cfg.Quote.BaseURL = v
	}
	if v := os.Getenv("TICKERLAB_QUOTE_PROXY_URL"); v != "" {
		cfg.Quote.ProxyURL = v
	}
	if v := os.Getenv("TICKERLAB_FX_SYMBOL"); v != "" {
		cfg.Quote.FxSymbol = v
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Quote.BaseURL == "" {
		return fmt.Errorf("quote.base_url must not be empty")
	}
	if c.Quote.Timeout <= 0 {
		return fmt.Errorf("quote.timeout must be positive")
	}
	if c.Analysis.SwingWindow < 3 {
		return fmt.Errorf("analysis.swing_window must be at least 3")
	}
	if c.Position.DefaultRiskPercent <= 0 || c.Position.DefaultRiskPercent > 100 {
		return fmt.Errorf("position.default_risk_percent must be in (0, 100]")
	}
	return nil
}
