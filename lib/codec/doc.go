// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// on-disk state files (launch records). The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. Same logical data
// always produces identical bytes.
//
// For buffer-oriented operations (state files):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized with this package carry `cbor` struct tags: they
// are internal state-file types and never participate in JSON
// serialization.
package codec
