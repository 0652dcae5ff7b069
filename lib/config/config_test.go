// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "launcher.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Production {
		t.Errorf("expected environment=production, got %s", cfg.Environment)
	}
	if cfg.App.Dir != "/opt/sauna/app" {
		t.Errorf("expected app.dir=/opt/sauna/app, got %s", cfg.App.Dir)
	}
	if cfg.App.Entrypoint != "main.py" {
		t.Errorf("expected app.entrypoint=main.py, got %s", cfg.App.Entrypoint)
	}
	if cfg.Update.Remote != "origin" || cfg.Update.Branch != "main" {
		t.Errorf("expected update origin/main, got %s/%s", cfg.Update.Remote, cfg.Update.Branch)
	}
	if cfg.Update.Disabled {
		t.Error("expected updates enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	origConfig := os.Getenv("SAUNA_LAUNCHER_CONFIG")
	defer os.Setenv("SAUNA_LAUNCHER_CONFIG", origConfig)

	os.Unsetenv("SAUNA_LAUNCHER_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SAUNA_LAUNCHER_CONFIG not set, got nil")
	}
	if !strings.Contains(err.Error(), "SAUNA_LAUNCHER_CONFIG") {
		t.Errorf("error = %v, want to name the environment variable", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
environment: production
app:
  dir: /home/pi/sauna
  entrypoint: main.py
  args: ["--port", "8080"]
update:
  remote: origin
  branch: stable
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.App.Dir != "/home/pi/sauna" {
		t.Errorf("app.dir = %q, want /home/pi/sauna", cfg.App.Dir)
	}
	if cfg.Update.Branch != "stable" {
		t.Errorf("update.branch = %q, want stable", cfg.Update.Branch)
	}
	if len(cfg.App.Args) != 2 || cfg.App.Args[1] != "8080" {
		t.Errorf("app.args = %v, want [--port 8080]", cfg.App.Args)
	}

	// Unspecified fields keep their defaults.
	if cfg.State.RecordPath != "/var/lib/sauna/launch-record.cbor" {
		t.Errorf("state.record_path = %q, want the default", cfg.State.RecordPath)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile succeeded on a missing file")
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "app: [not: a: mapping")
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile succeeded on invalid YAML")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: development
app:
  dir: /opt/sauna/app
development:
  app:
    dir: /home/dev/sauna
  update:
    disabled: true
production:
  app:
    dir: /should/not/apply
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.App.Dir != "/home/dev/sauna" {
		t.Errorf("app.dir = %q, want the development override", cfg.App.Dir)
	}
	if !cfg.Update.Disabled {
		t.Error("update.disabled = false, want the development override")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty app dir", func(c *Config) { c.App.Dir = "" }},
		{"empty entrypoint", func(c *Config) { c.App.Entrypoint = "" }},
		{"empty remote", func(c *Config) { c.Update.Remote = "" }},
		{"empty branch", func(c *Config) { c.Update.Branch = "" }},
		{"bad environment", func(c *Config) { c.Environment = "staging" }},
		{"bad max age", func(c *Config) { c.State.RecordMaxAge = "never" }},
		{"bad update timeout", func(c *Config) { c.Update.Timeout = "fast" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted a config with %s", tc.name)
			}
		})
	}
}

func TestUpdateTimeout(t *testing.T) {
	cfg := Default()

	// Default: no deadline.
	timeout, err := cfg.UpdateTimeout()
	if err != nil {
		t.Fatalf("UpdateTimeout: %v", err)
	}
	if timeout != 0 {
		t.Errorf("UpdateTimeout = %v, want 0 by default", timeout)
	}

	cfg.Update.Timeout = "30s"
	timeout, err = cfg.UpdateTimeout()
	if err != nil {
		t.Fatalf("UpdateTimeout: %v", err)
	}
	if timeout != 30*time.Second {
		t.Errorf("UpdateTimeout = %v, want 30s", timeout)
	}
}

func TestRecordMaxAge(t *testing.T) {
	cfg := Default()
	cfg.State.RecordMaxAge = "90s"

	age, err := cfg.RecordMaxAge()
	if err != nil {
		t.Fatalf("RecordMaxAge: %v", err)
	}
	if age != 90*time.Second {
		t.Errorf("RecordMaxAge = %v, want 90s", age)
	}
}
