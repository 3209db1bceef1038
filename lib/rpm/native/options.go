// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"log/slog"

	"github.com/bureau-foundation/rpmlib/lib/secret"
)

// Macro definition levels, from rpmmacro.h. Lower levels are shadowed
// by higher ones when the same name is defined twice.
const (
	LevelDefault     = -15
	LevelMacroFiles  = -13
	LevelRPMRC       = -11
	LevelCommandLine = -7
	LevelTarball     = -5
	LevelSpec        = -3
	LevelOldSpec     = -1
	LevelGlobal      = 0
)

// dbPathMacro names the macro holding the database directory.
const dbPathMacro = "_dbpath"

// Options configures [Open].
type Options struct {
	// Root is the installation root the transaction set operates on.
	// Empty means "/".
	Root string

	// ConfigFile is a colon-separated rpmrc list passed to
	// rpmReadConfigFiles. Empty reads the default locations. The
	// configuration is read once per process unless ConfigFile is set.
	ConfigFile string

	// DBPath overrides the _dbpath macro when set.
	DBPath string

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// SignOptions configures [Sign] and [DeleteSignature].
type SignOptions struct {
	// KeyID selects the signing key (the %_gpg_name macro is used when
	// nil). The value is zeroed once librpm has been called.
	KeyID *secret.Value[secret.Bytes]

	// HashAlgorithm is an OpenPGP hash algorithm number (8 = SHA256).
	// Zero uses the %_gpg_digest_algo default.
	HashAlgorithm int
}
