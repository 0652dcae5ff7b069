// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"path/filepath"

	"github.com/saunaworks/sauna/lib/venv"
)

// checkEnvironment verifies the virtualenv precondition. Unlike the
// update attempt there is no fallback here: without the environment
// there is nothing to execute, so a missing virtualenv fails the
// invocation. The error from venv.Check names the missing artifact and
// the exact command that recreates the environment.
func (l *Launcher) checkEnvironment() (*venv.Environment, error) {
	dir := l.config.App.Venv
	if dir == "" {
		dir = filepath.Join(l.config.App.Dir, ".venv")
	}

	environment := venv.New(dir)
	if err := environment.Check(); err != nil {
		return nil, err
	}

	l.logger.Info("virtualenv verified",
		"dir", environment.Dir(),
		"interpreter", environment.Interpreter(),
	)
	return environment, nil
}
