// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/saunaworks/sauna/lib/git"
)

// attemptUpdate performs the best-effort fast-forward sync of the
// application checkout and returns the outcome label for the launch
// record. Every failure here is advisory: the launch proceeds with
// whatever code is on disk. A flaky sauna-shed WiFi link must never
// keep the heater controller from starting.
func (l *Launcher) attemptUpdate(ctx context.Context) string {
	if l.config.Update.Disabled {
		l.logger.Info("update attempt disabled by configuration")
		return "disabled"
	}

	timeout, err := l.config.UpdateTimeout()
	if err != nil {
		// Validated at startup; reaching this means a programming error.
		timeout = 0
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	repository := git.NewRepository(l.config.App.Dir)
	result, err := repository.SyncFastForward(ctx, l.config.Update.Remote, l.config.Update.Branch)
	if err != nil {
		// Unexpected git failure (broken installation). Still advisory.
		l.logger.Error("update attempt failed", "error", err)
		return "failed"
	}

	switch result.Outcome {
	case git.SyncUpdated:
		l.logger.Info("checkout fast-forwarded to upstream",
			"remote", l.config.Update.Remote,
			"branch", l.config.Update.Branch,
			"from", result.Before,
			"to", result.After,
		)
	case git.SyncAlreadyCurrent:
		l.logger.Info("checkout already at upstream HEAD", "revision", result.After)
	default:
		l.logger.Warn("update skipped, launching existing code",
			"outcome", result.Outcome.String(),
			"revision", result.Before,
			"cause", result.Cause,
		)
	}

	return result.Outcome.String()
}
