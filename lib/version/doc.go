// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for rpmlib
// binaries.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/rpmlib/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without -ldflags the VCS stamp recorded by the go command is used
// when present.
package version
