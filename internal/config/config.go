// Package config loads the engine configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lowvisionlabs/axmux/internal/model"
)

// Config is the on-disk engine configuration.
type Config struct {
	Backends   BackendsConfig   `toml:"backends"`
	Activation ActivationConfig `toml:"activation"`
	Logging    LoggingConfig    `toml:"logging"`
}

// BackendsConfig selects which backends start enabled and which is
// preferred by routing.
type BackendsConfig struct {
	Enabled        []string `toml:"enabled"`
	Preferred      string   `toml:"preferred"`
	QueryTimeoutMS int      `toml:"query_timeout_ms"`
}

// ActivationConfig drives the extended-model negotiation.
type ActivationConfig struct {
	// Families is the lowercase process image names eligible for the
	// extended accessible model.
	Families []string `toml:"families"`
	// ContentWindowClasses is the window classes probed inside a frame
	// window, most specific first.
	ContentWindowClasses []string `toml:"content_window_classes"`
}

// LoggingConfig shapes the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given: every
// backend enabled, uia preferred.
func Default() *Config {
	return &Config{
		Backends: BackendsConfig{
			Enabled:        []string{"uia", "msaa", "ia2", "jab"},
			Preferred:      "uia",
			QueryTimeoutMS: 500,
		},
		Activation: ActivationConfig{
			Families: []string{"chrome.exe", "msedge.exe", "firefox.exe", "brave.exe", "opera.exe", "vivaldi.exe"},
			ContentWindowClasses: []string{
				"Chrome_RenderWidgetHostHWND",
				"MozillaContentWindowClass",
				"Internet Explorer_Server",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error;
// the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backend names and nonsensical timeouts.
func (c *Config) Validate() error {
	for _, name := range c.Backends.Enabled {
		if _, err := model.ParseIdentity(name); err != nil {
			return fmt.Errorf("config: enabled: %w", err)
		}
	}
	if c.Backends.Preferred != "" {
		if _, err := model.ParseIdentity(c.Backends.Preferred); err != nil {
			return fmt.Errorf("config: preferred: %w", err)
		}
	}
	if c.Backends.QueryTimeoutMS <= 0 {
		return fmt.Errorf("config: query_timeout_ms must be positive, got %d", c.Backends.QueryTimeoutMS)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	return nil
}

// QueryTimeout returns the per-query deadline as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Backends.QueryTimeoutMS) * time.Millisecond
}
