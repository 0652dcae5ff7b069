// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Package venv describes the Python virtual environment the controller
// application runs in. The launcher never creates or modifies the
// environment — it only verifies the environment exists and computes
// the activated environment variables for the child process. Activation
// is scoped entirely to the environment slice handed to exec: nothing
// in the launcher's own process state is mutated.
package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment is a Python virtual environment rooted at a directory,
// typically <checkout>/.venv on the appliance.
type Environment struct {
	dir string
}

// New returns an Environment rooted at dir.
func New(dir string) *Environment {
	return &Environment{dir: dir}
}

// Dir returns the environment root directory.
func (e *Environment) Dir() string {
	return e.dir
}

// Interpreter returns the path to the environment's Python binary.
func (e *Environment) Interpreter() string {
	return filepath.Join(e.dir, "bin", "python")
}

// activateScript is the artifact whose presence marks a usable
// virtualenv. A directory with bin/python but no activate script is
// a half-created environment and fails the check the same way.
func (e *Environment) activateScript() string {
	return filepath.Join(e.dir, "bin", "activate")
}

// Check verifies the environment exists and is complete. A missing
// environment is a fatal launch precondition: there is nothing to
// execute, so falling back (the update-failure policy) does not apply.
// The error names exactly what is missing and the command that
// recreates the environment.
func (e *Environment) Check() error {
	for _, artifact := range []string{e.activateScript(), e.Interpreter()} {
		if _, err := os.Stat(artifact); err != nil {
			return fmt.Errorf(
				"virtualenv missing at %s (%s not found) — create it with: python3 -m venv %s && %s/bin/pip install -r requirements.txt",
				e.dir, artifact, e.dir, e.dir)
		}
	}
	return nil
}

// Environ returns a copy of base with the environment activated:
// VIRTUAL_ENV set, the environment's bin directory prefixed to PATH,
// and PYTHONHOME dropped (it overrides the interpreter's own prefix
// and breaks virtualenv isolation). base is not modified.
func (e *Environment) Environ(base []string) []string {
	binDir := filepath.Join(e.dir, "bin")

	activated := make([]string, 0, len(base)+2)
	pathSeen := false
	for _, entry := range base {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			activated = append(activated, entry)
			continue
		}
		switch key {
		case "VIRTUAL_ENV", "PYTHONHOME":
			// Replaced and dropped respectively below.
		case "PATH":
			pathSeen = true
			activated = append(activated, "PATH="+binDir+string(os.PathListSeparator)+value)
		default:
			activated = append(activated, entry)
		}
	}

	if !pathSeen {
		activated = append(activated, "PATH="+binDir)
	}
	activated = append(activated, "VIRTUAL_ENV="+e.dir)
	return activated
}
