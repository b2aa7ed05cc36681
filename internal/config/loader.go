package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrHelpRequested is returned when the user asks for --help (or runs the
// tool with no arguments at all).
var ErrHelpRequested = errors.New("help requested")

// Load parses command-line arguments and an optional config file into a
// Config. Flag values override file values.
func Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	configPath := flagSet.Lookup("config").Value.String()
	if len(args) == 0 && configPath == "" {
		displayHelp(cmd)
		return nil, ErrHelpRequested
	}

	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Duration:   DefaultDuration,
		Rate:       DefaultRate,
		Workers:    DefaultWorkers,
		Output:     DefaultOutput,
		ConfigFile: configPath,
	}

	if err := applyConfigSettings(cfg, cfgViper.AllSettings()); err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	cfg.TargetURL = strings.TrimSpace(cfg.TargetURL)
	cfg.Output = strings.TrimSpace(cfg.Output)

	return cfg, nil
}

// applyConfigSettings folds config-file values into the Config.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	if raw, ok := settings["target"]; ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		cfg.TargetURL = val
	}
	if raw, ok := settings["duration"]; ok {
		val, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		cfg.Duration = val
	}
	if raw, ok := settings["rate"]; ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		cfg.Rate = val
	}
	if raw, ok := settings["parallel"]; ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("parallel: %w", err)
		}
		cfg.Parallel = val
	}
	if raw, ok := settings["workers"]; ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("workers: %w", err)
		}
		cfg.Workers = val
	}
	if raw, ok := settings["output"]; ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		cfg.Output = val
	}
	if raw, ok := settings["endpoints"]; ok {
		eps, err := asEndpoints(raw)
		if err != nil {
			return fmt.Errorf("endpoints: %w", err)
		}
		cfg.Endpoints = eps
	}

	return nil
}

func asString(raw interface{}) (string, error) {
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", raw)
	}
	return strings.TrimSpace(val), nil
}

func asInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func asBool(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("expected boolean, got %T", raw)
	}
}

// asDuration accepts either a Go duration string ("90s") or a bare number of
// seconds, which is how the original configuration expressed durations.
func asDuration(raw interface{}) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if secs, err := strconv.Atoi(trimmed); err == nil {
			return time.Duration(secs) * time.Second, nil
		}
		return time.ParseDuration(trimmed)
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("expected duration, got %T", raw)
	}
}

func asEndpoints(raw interface{}) ([]Endpoint, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
	endpoints := make([]Endpoint, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("entry %d: expected a mapping, got %T", i, item)
		}
		var ep Endpoint
		if raw, ok := entry["method"]; ok {
			val, err := asString(raw)
			if err != nil {
				return nil, fmt.Errorf("entry %d method: %w", i, err)
			}
			ep.Method = val
		}
		if raw, ok := entry["path"]; ok {
			val, err := asString(raw)
			if err != nil {
				return nil, fmt.Errorf("entry %d path: %w", i, err)
			}
			ep.Path = val
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}
