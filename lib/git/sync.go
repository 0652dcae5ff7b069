// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

package git

import "context"

// SyncOutcome classifies the result of a fast-forward sync attempt.
// Every outcome other than SyncUpdated and SyncAlreadyCurrent is
// advisory: the launcher logs it and proceeds with whatever code is
// already on disk. Availability of the running service takes priority
// over running the latest code.
type SyncOutcome int

const (
	// SyncUpdated means the working tree was fast-forwarded to a new
	// upstream commit.
	SyncUpdated SyncOutcome = iota

	// SyncAlreadyCurrent means the fetch and merge succeeded but the
	// tree was already at upstream HEAD.
	SyncAlreadyCurrent

	// SyncSkippedOffline means the remote could not be reached
	// (no network, DNS failure, remote host down). The tree is
	// untouched.
	SyncSkippedOffline

	// SyncSkippedDiverged means the local tree has commits not on
	// upstream, so the fast-forward-only merge refused to proceed.
	// The tree is untouched; no merge commit is ever created.
	SyncSkippedDiverged

	// SyncSkippedNoRepository means the directory is not a git
	// working tree at all.
	SyncSkippedNoRepository
)

// String returns the outcome name used in log output.
func (o SyncOutcome) String() string {
	switch o {
	case SyncUpdated:
		return "updated"
	case SyncAlreadyCurrent:
		return "already-current"
	case SyncSkippedOffline:
		return "skipped-offline"
	case SyncSkippedDiverged:
		return "skipped-diverged"
	case SyncSkippedNoRepository:
		return "skipped-no-repository"
	default:
		return "unknown"
	}
}

// Skipped reports whether the sync left the tree unchanged because of
// a failure. Skipped outcomes are advisory, never fatal.
func (o SyncOutcome) Skipped() bool {
	switch o {
	case SyncSkippedOffline, SyncSkippedDiverged, SyncSkippedNoRepository:
		return true
	}
	return false
}

// SyncResult carries the outcome of a sync attempt plus the commits
// involved. Before and After are empty when the directory is not a
// repository. Cause holds the underlying git error for skipped
// outcomes so the launcher can log what actually went wrong.
type SyncResult struct {
	Outcome SyncOutcome
	Before  string
	After   string
	Cause   error
}

// SyncFastForward attempts to fast-forward the working tree to the
// tip of the named branch on the named remote. It performs an
// explicit fetch followed by "merge --ff-only FETCH_HEAD": upstream
// history is adopted only when the local tree has no divergent
// commits, and the tree is never left mid-merge.
//
// SyncFastForward never returns an error for the failure modes the
// launcher expects in the field (no network, diverged history, not a
// checkout) — those are classified into the result's Outcome with the
// underlying error in Cause. The returned error is reserved for
// conditions that indicate a broken git installation rather than a
// degraded environment, and callers are still expected to treat it
// as advisory.
func (r *Repository) SyncFastForward(ctx context.Context, remote, branch string) (SyncResult, error) {
	if !r.IsWorkTree(ctx) {
		return SyncResult{Outcome: SyncSkippedNoRepository}, nil
	}

	before, err := r.Head(ctx)
	if err != nil {
		return SyncResult{Outcome: SyncSkippedNoRepository, Cause: err}, nil
	}

	if _, err := r.Run(ctx, "fetch", remote, branch); err != nil {
		// Fetch failures are network-shaped: unresolvable host,
		// unreachable remote, missing remote ref. All of them mean
		// "run what is on disk".
		return SyncResult{Outcome: SyncSkippedOffline, Before: before, Cause: err}, nil
	}

	if _, err := r.Run(ctx, "merge", "--ff-only", "FETCH_HEAD"); err != nil {
		// Everything the ff-only merge refuses — divergent local
		// commits, a dirty tree, unrelated histories — is the same
		// policy tier: the tree stays exactly as found and the
		// launch proceeds with it.
		return SyncResult{Outcome: SyncSkippedDiverged, Before: before, Cause: err}, nil
	}

	after, err := r.Head(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	outcome := SyncAlreadyCurrent
	if after != before {
		outcome = SyncUpdated
	}
	return SyncResult{Outcome: outcome, Before: before, After: after}, nil
}
