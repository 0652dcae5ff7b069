// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest parses the optional deploy manifest an application
// checkout may carry at its root. The manifest lets the application
// name its own entrypoint and arguments, so moving the entrypoint in a
// future commit needs no configuration change on the appliance — the
// update that moves the file also updates the manifest.
//
// The format is JSONC: JSON extended with // line comments, /* block
// comments */, and trailing commas, so the file can document itself.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// FileName is the manifest file name at the checkout root.
const FileName = "deploy.jsonc"

// Manifest describes how to start the application in a checkout.
type Manifest struct {
	// Entrypoint is the path of the application's main module,
	// relative to the checkout root.
	Entrypoint string `json:"entrypoint"`

	// Args are extra arguments passed to the entrypoint.
	Args []string `json:"args,omitempty"`

	// PythonVersion is the minimum interpreter version the
	// application expects. Informational: logged, not enforced.
	PythonVersion string `json:"python_version,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals and validates the result.
func Parse(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var m Manifest
	if err := json.Unmarshal(stripped, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile reads and parses a manifest file from disk.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load reads the manifest from a checkout directory. Returns (nil, nil)
// when the checkout has no manifest — the caller falls back to its
// configured entrypoint. A manifest that exists but fails to parse or
// validate is an error: a checkout that declares an entrypoint and gets
// it wrong should fail loudly, not silently launch something else.
func Load(checkoutDir string) (*Manifest, error) {
	path := filepath.Join(checkoutDir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return ReadFile(path)
}

// validate enforces the constraints that make an entrypoint safe to
// join onto the checkout root: relative, inside the checkout, and
// present at all.
func (m *Manifest) validate() error {
	if m.Entrypoint == "" {
		return fmt.Errorf("manifest has no entrypoint")
	}
	if filepath.IsAbs(m.Entrypoint) {
		return fmt.Errorf("manifest entrypoint %q must be relative to the checkout root", m.Entrypoint)
	}
	cleaned := filepath.Clean(m.Entrypoint)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("manifest entrypoint %q escapes the checkout root", m.Entrypoint)
	}
	return nil
}
