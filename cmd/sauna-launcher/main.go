// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/saunaworks/sauna/lib/config"
	"github.com/saunaworks/sauna/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath    string
		appDir        string
		venvDir       string
		entrypoint    string
		remote        string
		branch        string
		noUpdate      bool
		updateTimeout string
		recordPath    string
		showVersion   bool
	)

	pflag.StringVar(&configPath, "config", "", "path to launcher.yaml (default: $SAUNA_LAUNCHER_CONFIG)")
	pflag.StringVar(&appDir, "app-dir", "", "application checkout root (overrides config)")
	pflag.StringVar(&venvDir, "venv", "", "virtualenv directory (overrides config, default <app-dir>/.venv)")
	pflag.StringVar(&entrypoint, "entrypoint", "", "application entrypoint relative to the checkout (overrides config)")
	pflag.StringVar(&remote, "remote", "", "git remote to fetch from (overrides config)")
	pflag.StringVar(&branch, "branch", "", "upstream branch to fast-forward to (overrides config)")
	pflag.BoolVar(&noUpdate, "no-update", false, "skip the pre-launch update attempt")
	pflag.StringVar(&updateTimeout, "update-timeout", "", "bound the update attempt, e.g. 30s (overrides config, default none)")
	pflag.StringVar(&recordPath, "record-path", "", "launch record file (overrides config)")
	pflag.BoolVar(&showVersion, "version", false, "print version information and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("sauna-launcher %s\n", version.Full())
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Flags override the config file. The config file is the durable
	// appliance setup; flags exist for the systemd unit and for
	// development runs.
	if appDir != "" {
		cfg.App.Dir = appDir
	}
	if venvDir != "" {
		cfg.App.Venv = venvDir
	}
	if entrypoint != "" {
		cfg.App.Entrypoint = entrypoint
	}
	if remote != "" {
		cfg.Update.Remote = remote
	}
	if branch != "" {
		cfg.Update.Branch = branch
	}
	if noUpdate {
		cfg.Update.Disabled = true
	}
	if updateTimeout != "" {
		cfg.Update.Timeout = updateTimeout
	}
	if recordPath != "" {
		cfg.State.RecordPath = recordPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// SIGTERM from systemd during the update attempt cancels the git
	// subprocesses. After a successful exec there is no launcher left
	// to signal — systemd's signals reach the application directly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	launcher := &Launcher{
		config: cfg,
		logger: logger,
	}
	return launcher.Run(ctx)
}

// loadConfig resolves the configuration source: explicit --config flag,
// then the SAUNA_LAUNCHER_CONFIG environment variable, then built-in
// defaults (the standard appliance layout).
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("SAUNA_LAUNCHER_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}
