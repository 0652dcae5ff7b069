// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"context"
	"strings"
	"testing"
)

func TestRepository_Run(t *testing.T) {
	t.Parallel()

	dir := initUpstream(t)
	repo := NewRepository(dir)

	output, err := repo.Run(context.Background(), "log", "--oneline")
	if err != nil {
		t.Fatalf("Run(log --oneline): %v", err)
	}
	if !strings.Contains(output, "initial") {
		t.Errorf("log output = %q, want to contain 'initial'", output)
	}
}

func TestRepository_Run_InvalidSubcommand(t *testing.T) {
	t.Parallel()

	dir := initUpstream(t)
	repo := NewRepository(dir)

	_, err := repo.Run(context.Background(), "not-a-real-command")
	if err == nil {
		t.Fatal("expected error for invalid git subcommand")
	}
	if !strings.Contains(err.Error(), dir) {
		t.Errorf("error = %v, want to contain repository dir %q", err, dir)
	}
}

func TestRepository_Run_NonexistentDirectory(t *testing.T) {
	t.Parallel()

	repo := NewRepository("/tmp/nonexistent-git-repo-abcxyz")

	_, err := repo.Run(context.Background(), "status")
	if err == nil {
		t.Fatal("expected error for nonexistent directory")
	}
}

func TestRepository_Command(t *testing.T) {
	t.Parallel()

	repo := NewRepository("/some/dir")

	cmd := repo.Command(context.Background(), "status", "--porcelain")

	// exec.Cmd.Args includes the program name as Args[0].
	expectedArgs := []string{"git", "-C", "/some/dir", "status", "--porcelain"}
	if len(cmd.Args) != len(expectedArgs) {
		t.Fatalf("cmd.Args = %v, want %v", cmd.Args, expectedArgs)
	}
	for i, want := range expectedArgs {
		if cmd.Args[i] != want {
			t.Errorf("cmd.Args[%d] = %q, want %q", i, cmd.Args[i], want)
		}
	}
}

func TestRepository_Head(t *testing.T) {
	t.Parallel()

	dir := initUpstream(t)
	repo := NewRepository(dir)

	head, err := repo.Head(context.Background())
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("Head = %q, want a 40-character commit hash", head)
	}

	want := runGit(t, dir, "rev-parse", "HEAD")
	if head != want {
		t.Errorf("Head = %s, want %s", head, want)
	}
}

func TestRepository_IsWorkTree(t *testing.T) {
	t.Parallel()

	dir := initUpstream(t)
	if !NewRepository(dir).IsWorkTree(context.Background()) {
		t.Error("IsWorkTree = false for a checkout")
	}
	if NewRepository(t.TempDir()).IsWorkTree(context.Background()) {
		t.Error("IsWorkTree = true for an empty directory")
	}
}
