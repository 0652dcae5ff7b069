// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Package apphash computes content digests of application files. The
// launcher records the entrypoint digest in launch records so the
// journal can distinguish "same revision, locally modified entrypoint"
// from a clean checkout when diagnosing a crash loop.
package apphash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// String returns the hex encoding of the digest. This is the format
// used in launch records and log output.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// HashFile computes the BLAKE3 digest of the file at path. The file is
// streamed through the hash function in chunks (via io.Copy) to keep
// memory usage constant regardless of file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Parse parses a hex-encoded digest string into a Digest. Returns an
// error if the string is not a valid 64-character hex encoding of
// 32 bytes.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
