// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for working on the launcher itself on a PC.
	Development Environment = "development"
	// Production is the appliance deployment.
	Production Environment = "production"
)

// Config is the launcher configuration.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// App configures the managed application checkout.
	App AppConfig `yaml:"app"`

	// Update configures the pre-launch update attempt.
	Update UpdateConfig `yaml:"update"`

	// State configures launch-record bookkeeping.
	State StateConfig `yaml:"state"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	App    *AppConfig    `yaml:"app,omitempty"`
	Update *UpdateConfig `yaml:"update,omitempty"`
	State  *StateConfig  `yaml:"state,omitempty"`
}

// AppConfig configures the managed application.
type AppConfig struct {
	// Dir is the root of the application checkout.
	Dir string `yaml:"dir"`

	// Venv is the virtualenv directory. Default: <dir>/.venv
	Venv string `yaml:"venv"`

	// Entrypoint is the application's main module, relative to Dir.
	// A deploy manifest in the checkout takes precedence.
	// Default: main.py
	Entrypoint string `yaml:"entrypoint"`

	// Args are extra arguments passed to the entrypoint.
	Args []string `yaml:"args"`
}

// UpdateConfig configures the pre-launch update attempt.
type UpdateConfig struct {
	// Disabled skips the update attempt entirely. The environment
	// check and launch still run.
	Disabled bool `yaml:"disabled"`

	// Remote is the git remote to fetch from. Default: origin
	Remote string `yaml:"remote"`

	// Branch is the upstream branch to fast-forward to. Default: main
	Branch string `yaml:"branch"`

	// Timeout bounds the whole update attempt. Duration string; empty
	// means no deadline beyond git's own network timeouts.
	Timeout string `yaml:"timeout"`
}

// StateConfig configures launch-record bookkeeping.
type StateConfig struct {
	// RecordPath is where the launch record is written.
	// Default: /var/lib/sauna/launch-record.cbor
	RecordPath string `yaml:"record_path"`

	// RecordMaxAge is how recent a previous launch record must be to
	// count as a fast exit worth reporting. Duration string.
	// Default: 5m
	RecordMaxAge string `yaml:"record_max_age"`
}

// Default returns the default configuration. These defaults describe
// the standard appliance layout; a config file or flags override them.
func Default() *Config {
	return &Config{
		Environment: Production,
		App: AppConfig{
			Dir:        "/opt/sauna/app",
			Venv:       "",
			Entrypoint: "main.py",
		},
		Update: UpdateConfig{
			Remote: "origin",
			Branch: "main",
		},
		State: StateConfig{
			RecordPath:   "/var/lib/sauna/launch-record.cbor",
			RecordMaxAge: "5m",
		},
	}
}

// Load loads configuration from the SAUNA_LAUNCHER_CONFIG environment
// variable. Fails when the variable is not set — there is no config
// file discovery, which keeps the appliance configuration deterministic
// and auditable.
func Load() (*Config, error) {
	configPath := os.Getenv("SAUNA_LAUNCHER_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("SAUNA_LAUNCHER_CONFIG environment variable not set; " +
			"set it to the path of your launcher.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth; environment variables do not
// override config values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching the configured
// environment over the base values.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.App != nil {
		if overrides.App.Dir != "" {
			c.App.Dir = overrides.App.Dir
		}
		if overrides.App.Venv != "" {
			c.App.Venv = overrides.App.Venv
		}
		if overrides.App.Entrypoint != "" {
			c.App.Entrypoint = overrides.App.Entrypoint
		}
		if overrides.App.Args != nil {
			c.App.Args = overrides.App.Args
		}
	}

	if overrides.Update != nil {
		// Disabled is a bool, so it always applies from overrides.
		c.Update.Disabled = overrides.Update.Disabled
		if overrides.Update.Remote != "" {
			c.Update.Remote = overrides.Update.Remote
		}
		if overrides.Update.Branch != "" {
			c.Update.Branch = overrides.Update.Branch
		}
		if overrides.Update.Timeout != "" {
			c.Update.Timeout = overrides.Update.Timeout
		}
	}

	if overrides.State != nil {
		if overrides.State.RecordPath != "" {
			c.State.RecordPath = overrides.State.RecordPath
		}
		if overrides.State.RecordMaxAge != "" {
			c.State.RecordMaxAge = overrides.State.RecordMaxAge
		}
	}
}

// Validate checks the configuration for values that would make the
// launcher fail in a confusing way later.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Production:
	default:
		return fmt.Errorf("environment must be %q or %q, got %q",
			Development, Production, c.Environment)
	}
	if c.App.Dir == "" {
		return fmt.Errorf("app.dir is required")
	}
	if c.App.Entrypoint == "" {
		return fmt.Errorf("app.entrypoint is required")
	}
	if c.Update.Remote == "" {
		return fmt.Errorf("update.remote is required")
	}
	if c.Update.Branch == "" {
		return fmt.Errorf("update.branch is required")
	}
	if _, err := c.UpdateTimeout(); err != nil {
		return err
	}
	if _, err := c.RecordMaxAge(); err != nil {
		return err
	}
	return nil
}

// UpdateTimeout parses the configured update timeout. Zero means no
// deadline.
func (c *Config) UpdateTimeout() (time.Duration, error) {
	if c.Update.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Update.Timeout)
	if err != nil {
		return 0, fmt.Errorf("update.timeout %q: %w", c.Update.Timeout, err)
	}
	return timeout, nil
}

// RecordMaxAge parses the configured record max age.
func (c *Config) RecordMaxAge() (time.Duration, error) {
	age, err := time.ParseDuration(c.State.RecordMaxAge)
	if err != nil {
		return 0, fmt.Errorf("state.record_max_age %q: %w", c.State.RecordMaxAge, err)
	}
	return age, nil
}
