// Copyright 2026 The Saunaworks Authors
// SPDX-License-Identifier: Apache-2.0

// Sauna-launcher starts the sauna controller application on the
// appliance. One invocation is strictly linear: attempt a fast-forward
// update of the application checkout, verify the Python virtualenv
// exists, then replace this process image with the application via
// exec(). There is no internal retry loop — systemd invokes the
// launcher with Restart=always and a fixed RestartSec, so after every
// application exit the next invocation updates and relaunches.
//
// Because the process image is replaced rather than forked, systemd
// tracks exactly one process: the application's exit status and
// signals are attributed directly to it, with no wrapper left behind.
//
// Failure policy, in two tiers: update failures (no network, diverged
// checkout) are advisory — logged, and launch proceeds with the code
// already on disk. A missing virtualenv or a failed exec is fatal —
// logged with the remedial command and exit 1, without starting the
// application. The kiosk browser pointed at the controller's web UI is
// started by the desktop session independently of this binary.
package main
