// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package apphash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/blake3"
)

func TestHashFile(t *testing.T) {
	t.Parallel()

	content := []byte("print('hello sauna')\n")
	path := filepath.Join(t.TempDir(), "app.py")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	want := blake3.Sum256(content)
	if got != Digest(want) {
		t.Errorf("HashFile = %s, want %x", got, want)
	}
}

func TestHashFile_DifferentContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.py")
	pathB := filepath.Join(dir, "b.py")
	if err := os.WriteFile(pathA, []byte("a = 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(pathB, []byte("b = 2\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	digestA, err := HashFile(pathA)
	if err != nil {
		t.Fatalf("HashFile(a): %v", err)
	}
	digestB, err := HashFile(pathB)
	if err != nil {
		t.Fatalf("HashFile(b): %v", err)
	}
	if digestA == digestB {
		t.Error("different content produced identical digests")
	}
}

func TestHashFile_Missing(t *testing.T) {
	t.Parallel()

	if _, err := HashFile(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Error("HashFile succeeded on a missing file")
	}
}

func TestStringParseRoundtrip(t *testing.T) {
	t.Parallel()

	original := Digest(blake3.Sum256([]byte("roundtrip")))

	parsed, err := Parse(original.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != original {
		t.Errorf("Parse(String()) = %s, want %s", parsed, original)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := Parse("not-hex"); err == nil {
		t.Error("Parse accepted non-hex input")
	}
	if _, err := Parse("abcd"); err == nil {
		t.Error("Parse accepted a short digest")
	}
}
