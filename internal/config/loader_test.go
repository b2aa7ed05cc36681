package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"restload/internal/config"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restload.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load([]string{"--target", "http://api.local"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetURL != "http://api.local" {
		t.Errorf("target: got %q", cfg.TargetURL)
	}
	if cfg.Duration != config.DefaultDuration {
		t.Errorf("duration default: got %s", cfg.Duration)
	}
	if cfg.Rate != config.DefaultRate {
		t.Errorf("rate default: got %d", cfg.Rate)
	}
	if cfg.Parallel {
		t.Error("parallel should default to false")
	}
	if cfg.Workers != config.DefaultWorkers {
		t.Errorf("workers default: got %d", cfg.Workers)
	}
	if cfg.Output != config.DefaultOutput {
		t.Errorf("output default: got %q", cfg.Output)
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := config.Load([]string{
		"--target", "https://api.local:8443",
		"-d", "90s",
		"-r", "25",
		"--parallel",
		"-w", "8",
		"-o", "out.csv",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Duration != 90*time.Second || cfg.Rate != 25 || !cfg.Parallel || cfg.Workers != 8 || cfg.Output != "out.csv" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
target: http://jsonapi.example.local
duration: 120
rate: 5
parallel: true
workers: 6
output: run.csv
endpoints:
  - method: GET
    path: /health
  - method: POST
    path: /api/users
`)

	cfg, err := config.Load([]string{"--config", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetURL != "http://jsonapi.example.local" {
		t.Errorf("target: got %q", cfg.TargetURL)
	}
	// Bare numbers in the file are seconds.
	if cfg.Duration != 2*time.Minute {
		t.Errorf("duration: got %s", cfg.Duration)
	}
	if cfg.Rate != 5 || !cfg.Parallel || cfg.Workers != 6 || cfg.Output != "run.csv" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.Endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(cfg.Endpoints))
	}
	if cfg.Endpoints[1].Method != "POST" || cfg.Endpoints[1].Path != "/api/users" {
		t.Fatalf("endpoint override mangled: %+v", cfg.Endpoints[1])
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeConfigFile(t, "target: http://from-file.local\nrate: 5\nduration: 30s\n")

	cfg, err := config.Load([]string{"--config", path, "--target", "http://from-flag.local", "-r", "50"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetURL != "http://from-flag.local" {
		t.Errorf("flag should override file target, got %q", cfg.TargetURL)
	}
	if cfg.Rate != 50 {
		t.Errorf("flag should override file rate, got %d", cfg.Rate)
	}
	// Untouched file value survives.
	if cfg.Duration != 30*time.Second {
		t.Errorf("file duration lost: %s", cfg.Duration)
	}
}

func TestLoadNoArgsShowsHelp(t *testing.T) {
	_, err := config.Load(nil)
	if !errors.Is(err, config.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested, got %v", err)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := config.Load([]string{"--config", "/nonexistent/restload.yaml"})
	if err == nil || errors.Is(err, config.ErrHelpRequested) {
		t.Fatalf("expected read error for missing config file, got %v", err)
	}
}

func TestLoadBadEndpointEntry(t *testing.T) {
	path := writeConfigFile(t, "target: http://x\nendpoints: [42]\n")
	if _, err := config.Load([]string{"--config", path}); err == nil {
		t.Fatal("expected error for malformed endpoint entry")
	}
}
