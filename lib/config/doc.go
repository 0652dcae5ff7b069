// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the launcher.
//
// Configuration is loaded from a single file specified by either the
// SAUNA_LAUNCHER_CONFIG environment variable (via [Load]) or a
// --config flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search. This ensures deterministic,
// auditable configuration with no hidden overrides.
//
// The configuration file supports environment-specific sections
// (development, production) that override base values when
// [Config].Environment matches. A development section typically points
// the app checkout at a workstation path and disables updates.
//
// Key exports:
//
//   - [Config] -- master struct with App, Update, State
//   - [Default] -- returns a Config with the standard appliance layout
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other launcher packages.
package config
