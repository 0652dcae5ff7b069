// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/saunaworks/sauna/lib/config"
	"github.com/saunaworks/sauna/lib/launchrec"
)

// Launcher holds the state for one launch sequence. A sequence is
// strictly linear — update attempt, environment check, exec — and the
// struct exists so the steps can share configuration and so tests can
// inject execFunc and environ.
type Launcher struct {
	config *config.Config
	logger *slog.Logger

	// execFunc overrides unix.Exec in tests. nil means unix.Exec.
	execFunc func(argv0 string, argv []string, envv []string) error

	// environ overrides os.Environ in tests.
	environ func() []string
}

// Run executes one launch sequence. On success it does not return:
// the process image has been replaced by the application. Errors are
// the fatal tier — missing checkout, missing virtualenv, failed exec.
func (l *Launcher) Run(ctx context.Context) error {
	// Resolve the checkout path before changing into it: a relative
	// app.dir must keep meaning the same directory in the git and
	// virtualenv steps that run after the chdir.
	appDir, err := filepath.Abs(l.config.App.Dir)
	if err != nil {
		return fmt.Errorf("resolving application checkout path %s: %w", l.config.App.Dir, err)
	}
	l.config.App.Dir = appDir

	// The checkout directory is the working directory for everything
	// that follows, including the application after exec. A missing
	// checkout means there is nothing to run at all.
	if err := os.Chdir(l.config.App.Dir); err != nil {
		return fmt.Errorf("application checkout missing at %s: %w — clone the application there first",
			l.config.App.Dir, err)
	}

	l.reportPreviousLaunch()

	updateOutcome := l.attemptUpdate(ctx)

	environment, err := l.checkEnvironment()
	if err != nil {
		return err
	}

	return l.execApplication(ctx, environment, updateOutcome)
}

// reportPreviousLaunch reads the record written before the previous
// exec. Because systemd restarts the unit whenever the application
// exits, a record younger than the configured max age means the
// application died almost immediately — worth a journal entry naming
// the revision, especially right after an automatic update.
func (l *Launcher) reportPreviousLaunch() {
	maxAge, err := l.config.RecordMaxAge()
	if err != nil {
		// Validated at startup; reaching this means a programming error.
		maxAge = 5 * time.Minute
	}

	record, found, err := launchrec.Check(l.config.State.RecordPath, maxAge)
	if err != nil {
		l.logger.Error("reading previous launch record",
			"path", l.config.State.RecordPath, "error", err)
		return
	}
	if !found {
		return
	}

	l.logger.Warn("application exited shortly after the previous launch",
		"revision", record.Revision,
		"entrypoint_digest", record.EntrypointDigest,
		"update_outcome", record.UpdateOutcome,
		"survived", record.Age().Round(time.Second).String(),
	)
}
