// Package config loads the stockdash configuration from YAML with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the stocks API every endpoint path is resolved against.
const DefaultBaseURL = "https://stocksapi-uhe1.onrender.com/api/stocks/"

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the stock dashboard.
type Config struct {
	API       API       `yaml:"api"`
	Dashboard Dashboard `yaml:"dashboard"`
	Refresh   Refresh   `yaml:"refresh"`
	Export    Export    `yaml:"export"`
	Logging   Logging   `yaml:"logging"`
}

// API holds the remote data source settings.
type API struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RatePerSec float64       `yaml:"rate_per_sec"`
	Burst      int           `yaml:"burst"`
}

// Dashboard holds the initial selection and display settings.
type Dashboard struct {
	Symbol    string `yaml:"symbol"`
	TimeFrame string `yaml:"timeframe"`
	Location  string `yaml:"location"`
}

// Refresh configures the optional cron-driven reload of the current selection.
type Refresh struct {
	Cron string `yaml:"cron"`
}

// Export holds where chart PNG snapshots are written.
type Export struct {
	Dir string `yaml:"dir"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API: API{
			BaseURL:    DefaultBaseURL,
			Timeout:    30 * time.Second,
			RatePerSec: 5,
			Burst:      6,
		},
		Dashboard: Dashboard{
			Symbol:    "AAPL",
			TimeFrame: "5y",
		},
		Export: Export{Dir: "."},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML configuration file at the given path on top of the
// defaults and then applies environment variable overrides. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if c.API.RatePerSec < 0 {
		return fmt.Errorf("api.rate_per_sec must not be negative, got %g", c.API.RatePerSec)
	}
	switch c.Dashboard.TimeFrame {
	case "1mo", "3mo", "1y", "5y":
	default:
		return fmt.Errorf("dashboard.timeframe %q is not one of 1mo, 3mo, 1y, 5y", c.Dashboard.TimeFrame)
	}
	if c.Dashboard.Location != "" {
		if _, err := time.LoadLocation(c.Dashboard.Location); err != nil {
			return fmt.Errorf("dashboard.location: %w", err)
		}
	}
	return nil
}

// TimeLocation returns the location used for chart date labels.
func (c *Config) TimeLocation() *time.Location {
	if c.Dashboard.Location == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Dashboard.Location)
	if err != nil {
		return time.Local
	}
	return loc
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCKDASH_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOCKDASH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}

	if v := os.Getenv("STOCKDASH_SYMBOL"); v != "" {
		cfg.Dashboard.Symbol = v
	}
	if v := os.Getenv("STOCKDASH_TIMEFRAME"); v != "" {
		cfg.Dashboard.TimeFrame = v
	}
	if v := os.Getenv("STOCKDASH_LOCATION"); v != "" {
		cfg.Dashboard.Location = v
	}

	if v := os.Getenv("STOCKDASH_REFRESH_CRON"); v != "" {
		cfg.Refresh.Cron = v
	}

	if v := os.Getenv("STOCKDASH_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}

	if v := os.Getenv("STOCKDASH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("STOCKDASH_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
