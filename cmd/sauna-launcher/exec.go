// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/saunaworks/sauna/lib/apphash"
	"github.com/saunaworks/sauna/lib/git"
	"github.com/saunaworks/sauna/lib/launchrec"
	"github.com/saunaworks/sauna/lib/manifest"
	"github.com/saunaworks/sauna/lib/venv"
)

// resolveEntrypoint determines which file the interpreter runs. The
// checkout's deploy manifest wins when present — the application names
// its own entrypoint so a commit can move it — otherwise the configured
// entrypoint applies. A manifest that exists but fails to parse is
// fatal: silently launching the configured fallback instead of what
// the checkout declares would mask a bad deploy.
func (l *Launcher) resolveEntrypoint() (string, []string, error) {
	entry := l.config.App.Entrypoint
	args := l.config.App.Args

	m, err := manifest.Load(l.config.App.Dir)
	if err != nil {
		return "", nil, err
	}
	if m != nil {
		entry = m.Entrypoint
		args = m.Args
		l.logger.Info("using deploy manifest",
			"entrypoint", m.Entrypoint,
			"python_version", m.PythonVersion,
		)
	}

	absolute := filepath.Join(l.config.App.Dir, entry)
	if _, err := os.Stat(absolute); err != nil {
		return "", nil, fmt.Errorf("entrypoint not found at %s: %w — check app.entrypoint or the checkout's %s",
			absolute, err, manifest.FileName)
	}
	return absolute, args, nil
}

// writeLaunchRecord records the revision and entrypoint digest about
// to be launched. Best effort: the record is crash-loop bookkeeping,
// and failing to write it must not keep the application from starting.
func (l *Launcher) writeLaunchRecord(ctx context.Context, entrypoint, updateOutcome string) {
	record := launchrec.Record{
		UpdateOutcome: updateOutcome,
		Timestamp:     time.Now(),
	}

	if revision, err := git.NewRepository(l.config.App.Dir).Head(ctx); err == nil {
		record.Revision = revision
	}
	if digest, err := apphash.HashFile(entrypoint); err == nil {
		record.EntrypointDigest = digest.String()
	}

	path := l.config.State.RecordPath
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		l.logger.Warn("cannot create launch record directory", "path", path, "error", err)
		return
	}
	if err := launchrec.Write(path, record); err != nil {
		l.logger.Warn("cannot write launch record", "path", path, "error", err)
	}
}

// execApplication replaces the current process image with the
// application. On success this function never returns; systemd now
// tracks the application under the launcher's PID. On failure the
// pending launch record is cleared — no launch happened — and the
// error is fatal.
func (l *Launcher) execApplication(ctx context.Context, environment *venv.Environment, updateOutcome string) error {
	entrypoint, args, err := l.resolveEntrypoint()
	if err != nil {
		return err
	}

	l.writeLaunchRecord(ctx, entrypoint, updateOutcome)

	interpreter := environment.Interpreter()
	argv := append([]string{interpreter, entrypoint}, args...)

	osEnviron := l.environ
	if osEnviron == nil {
		osEnviron = os.Environ
	}
	envv := environment.Environ(osEnviron())

	l.logger.Info("replacing process image with application",
		"interpreter", interpreter,
		"entrypoint", entrypoint,
		"args", args,
	)

	execFunction := l.execFunc
	if execFunction == nil {
		execFunction = unix.Exec
	}
	err = execFunction(interpreter, argv, envv)

	// Only reached when exec() failed: the process was not replaced
	// and no application was started.
	if clearErr := launchrec.Clear(l.config.State.RecordPath); clearErr != nil {
		l.logger.Error("clearing launch record after exec failure",
			"path", l.config.State.RecordPath, "error", clearErr)
	}
	return fmt.Errorf("exec %s: %w", interpreter, err)
}
