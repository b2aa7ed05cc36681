// Package config defines the runtime configuration surface: flags, an
// optional config file, and validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Defaults mirror the knobs the tool shipped with before they were
// configurable.
const (
	DefaultDuration = 60 * time.Second
	DefaultRate     = 10
	DefaultWorkers  = 4
	DefaultOutput   = "test_results.csv"

	// RequestTimeout is fixed; it is not part of the configuration surface.
	RequestTimeout = 10 * time.Second
)

// Config holds the recognized options for a run. The load-shaping surface is
// deliberately small: base target, duration, rate, parallel toggle, workers.
type Config struct {
	TargetURL string        `mapstructure:"target"`
	Duration  time.Duration `mapstructure:"duration"`
	Rate      int           `mapstructure:"rate"`
	Parallel  bool          `mapstructure:"parallel"`
	Workers   int           `mapstructure:"workers"`

	Output     string     `mapstructure:"output"`
	Endpoints  []Endpoint `mapstructure:"endpoints"`
	ConfigFile string     `mapstructure:"-"`
}

// Endpoint is an optional catalog override entry from the config file.
type Endpoint struct {
	Method string `mapstructure:"method"`
	Path   string `mapstructure:"path"`
}

// Validate checks the configuration before any request is issued.
func (c *Config) Validate() error {
	target := strings.TrimSpace(c.TargetURL)
	if target == "" {
		return fmt.Errorf("target base URL is required")
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("target %q must use http or https", target)
	}
	if u.Host == "" {
		return fmt.Errorf("target %q has no host", target)
	}

	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", c.Duration)
	}

	if c.Parallel {
		if c.Workers < 1 {
			return fmt.Errorf("workers must be >= 1 in parallel mode, got %d", c.Workers)
		}
	} else {
		if c.Rate < 1 {
			return fmt.Errorf("rate must be >= 1 request/second, got %d", c.Rate)
		}
	}

	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path is required")
	}

	return nil
}
