// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Package launchrec provides atomic state file operations for tracking
// launch transitions. The launcher writes a record immediately before
// replacing itself with the controller application; because systemd
// restarts the unit whenever the application exits, the next launcher
// invocation can read the previous record and tell how long the
// application survived — and at which source revision. A record that is
// only seconds old when the next invocation starts means the revision
// it names crashed on startup, which is exactly the situation an
// operator wants in the journal after an automatic update.
//
// The record file is written atomically (write to temporary file,
// fsync, rename) so readers never see a partial or corrupt state.
// Staleness checking via Check prevents acting on ancient records left
// behind by a normal shutdown weeks earlier.
package launchrec

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/saunaworks/sauna/lib/codec"
)

// Record captures the context of one launch attempt. Written before
// the process image is replaced, read by the next invocation.
type Record struct {
	// Revision is the commit hash of the checkout at launch time.
	Revision string `cbor:"revision"`

	// EntrypointDigest is the BLAKE3 digest of the entrypoint file at
	// launch time. Distinguishes "same revision, locally edited
	// entrypoint" in diagnostics.
	EntrypointDigest string `cbor:"entrypoint_digest,omitempty"`

	// UpdateOutcome is the sync outcome string for the update attempt
	// that preceded this launch (updated, already-current,
	// skipped-offline, ...).
	UpdateOutcome string `cbor:"update_outcome"`

	// Timestamp is when the launch was initiated.
	Timestamp time.Time `cbor:"timestamp"`
}

// Age returns how long ago the record was written.
func (r Record) Age() time.Duration {
	return time.Since(r.Timestamp)
}

// Write atomically writes a launch record. The file is written to a
// temporary location in the same directory, fsynced for durability,
// and renamed into place. Readers never see a partial write.
//
// The file is created with mode 0600. The parent directory must
// already exist.
func Write(path string, record Record) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling launch record: %w", err)
	}

	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary launch record: %w", err)
	}

	// Write, sync, close — in that order. If any step fails, remove
	// the temporary file and report the first error.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary launch record: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary launch record: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary launch record: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming launch record into place: %w", err)
	}

	// Sync the parent directory so the rename survives power loss —
	// the appliance gets unplugged, not shut down.
	parentDirectory, err := os.Open(filepath.Dir(path))
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}

	return nil
}

// Read reads and parses a launch record. When the file does not exist,
// the returned error wraps os.ErrNotExist (testable with errors.Is).
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := codec.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("parsing launch record %s: %w", path, err)
	}
	return record, nil
}

// Check reads a launch record and verifies it was written recently
// enough to be relevant. Returns the record and true when the file
// exists and its Timestamp is within maxAge of now. Returns a zero
// Record and false when the file does not exist or is older than
// maxAge; a stale record is removed so it cannot linger across
// invocations that never reach their own launch.
//
// Any other error (permission denied, corrupt CBOR) is returned as-is
// so the caller can distinguish "no record" from "record exists but
// unreadable."
func Check(path string, maxAge time.Duration) (Record, bool, error) {
	record, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	if time.Since(record.Timestamp) > maxAge {
		// The application the record describes ran long past the
		// crash-loop window. Nothing will report on it again.
		if err := Clear(path); err != nil {
			return Record{}, false, err
		}
		return Record{}, false, nil
	}

	return record, true, nil
}

// Clear removes a launch record. Idempotent: returns nil when the
// file does not exist.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing launch record: %w", err)
	}
	return nil
}
