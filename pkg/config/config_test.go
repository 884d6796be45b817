package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "environment: production\nforecast:\n  window: 5\n  horizon: 12\nsource:\n  type: synthetic\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Forecast.Window != 5 || c.Forecast.Horizon != 12 {
		t.Errorf("file values not applied: %+v", c.Forecast)
	}
	if c.Forecast.History != 10 {
		t.Errorf("missing fields must keep defaults, got history=%d", c.Forecast.History)
	}
}

func TestValidateRejectsBadSource(t *testing.T) {
	c := Default()
	c.Source.Type = "oracle"
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "source.type") {
		t.Fatalf("expected source.type error, got %v", err)
	}
}

func TestValidateCSVNeedsPath(t *testing.T) {
	c := Default()
	c.Source.Type = "csv"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for csv source without path")
	}
}

func TestValidateLiveNeedsKafka(t *testing.T) {
	c := Default()
	c.Live.Enabled = true
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for live mode without brokers")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("environment: development\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRENDCAST_SOURCE", "csv")
	t.Setenv("TRENDCAST_CSV_PATH", "/tmp/data.csv")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Source.Type != "csv" || c.Source.CSVPath != "/tmp/data.csv" {
		t.Errorf("env overrides not applied: %+v", c.Source)
	}
}
