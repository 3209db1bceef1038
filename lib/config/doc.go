// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for rpmlib.
//
// Configuration is loaded from a single file specified by either the
// RPMLIB_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search; a command run with neither uses [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${RPMLIB_ROOT} (the configured root), and ${VAR:-default}
// patterns are expanded. No environment variable overrides a value
// that the file sets.
//
// Key exports:
//
//   - [Config] -- master struct with RPM, Snapshot, Output sections
//   - [Default] -- returns a Config that reads the host database
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other rpmlib packages.
package config
