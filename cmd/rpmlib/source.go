// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/rpmlib/lib/config"
	"github.com/bureau-foundation/rpmlib/lib/rpm"
	"github.com/bureau-foundation/rpmlib/lib/rpm/native"
	"github.com/bureau-foundation/rpmlib/lib/rpm/rpmdb"
)

// openSource opens the package database cfg selects and reports which
// backend served it.
func openSource(cfg *config.Config, logger *slog.Logger) (rpm.Source, config.Backend, error) {
	backend := cfg.Backend
	if backend == config.BackendAuto {
		backend = config.BackendRPMDB
		if native.Available() {
			backend = config.BackendNative
		}
		logger.Debug("backend selected", "backend", backend)
	}

	switch backend {
	case config.BackendNative:
		source, err := openNative(cfg, logger)
		return source, backend, err
	case config.BackendRPMDB:
		source, err := openRPMDB(cfg, logger)
		return source, backend, err
	default:
		return nil, backend, fmt.Errorf("unknown backend %q", backend)
	}
}

func openNative(cfg *config.Config, logger *slog.Logger) (rpm.Source, error) {
	if !native.Available() {
		return nil, fmt.Errorf("native backend: %w (rebuild with -tags rpmlib, or use --backend rpmdb)", rpm.ErrUnavailable)
	}
	if err := configureNative(cfg, logger); err != nil {
		return nil, err
	}

	db, err := native.Open(native.Options{
		Root:   cfg.Root,
		DBPath: cfg.RPM.DBPath,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// configureNative reads the rpmrc files and defines the configured
// macros at command-line level, so they override macro files.
func configureNative(cfg *config.Config, logger *slog.Logger) error {
	if err := native.ReadConfig(cfg.RPM.ConfigFile); err != nil {
		return err
	}
	for _, definition := range cfg.MacroDefinitions() {
		if err := native.DefineMacro(definition, native.LevelCommandLine); err != nil {
			return err
		}
		logger.Debug("macro defined", "definition", definition)
	}
	return nil
}

func openRPMDB(cfg *config.Config, logger *slog.Logger) (rpm.Source, error) {
	var (
		db  *rpmdb.DB
		err error
	)
	if cfg.RPM.DBPath != "" {
		db, err = rpmdb.Open(cfg.RPM.DBPath, logger)
	} else {
		db, err = rpmdb.OpenRoot(cfg.Root, logger)
	}
	if err != nil {
		return nil, err
	}
	return db, nil
}
