// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bureau-foundation/rpmlib/lib/codec"
	"github.com/bureau-foundation/rpmlib/lib/inventory"
)

// now is replaced in tests.
var now = time.Now

func snapshotCmd(ctx context.Context, env *environment, args []string) error {
	flagSet := newFlagSet("snapshot", env)
	var common commonFlags
	var output, compressionName string
	flagSet.StringVar(&output, "output", "", "snapshot name or path (default: a UTC timestamp in snapshot.directory)")
	flagSet.StringVar(&compressionName, "compression", "", "payload compression: zstd, lz4, or none (default: snapshot.compression)")
	common.registerSource(flagSet)
	common.registerOutput(flagSet)

	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if err := rejectArgs(flagSet); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if compressionName == "" {
		compressionName = cfg.Snapshot.Compression
	}
	compression, err := inventory.ParseCompression(compressionName)
	if err != nil {
		return usageError("--compression: %v", err)
	}

	taken := now()
	named := output != ""
	if !named {
		output = taken.UTC().Format("20060102T150405Z") + ".rpminv"
	}
	path := cfg.SnapshotPath(output)
	if filepath.Dir(path) == filepath.Clean(cfg.Snapshot.Directory) {
		if err := cfg.EnsureSnapshotDirectory(); err != nil {
			return err
		}
	}
	// Timestamped names have one-second resolution; never let a second
	// run in the same second replace the first.
	if !named {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("snapshot %s already exists; pass --output to choose a name", path)
		}
	}

	source, backend, err := openSource(cfg, env.logger)
	if err != nil {
		return err
	}
	defer source.Close()

	snapshot, err := inventory.Take(ctx, source, string(backend), cfg.Root, taken)
	if err != nil {
		return err
	}
	write := inventory.WriteFile
	if !named {
		write = inventory.CreateFile
	}
	if _, err := write(path, snapshot, compression); err != nil {
		return err
	}
	digest, err := snapshot.Digest()
	if err != nil {
		return err
	}
	env.logger.Info("snapshot written",
		"path", path,
		"backend", backend,
		"packages", len(snapshot.Packages),
		"compression", compression.String(),
	)

	out := newPrinter(env.stdout, cfg.Output)
	if out.structured() {
		return out.value(snapshotSummary{
			Path:     path,
			Backend:  snapshot.Backend,
			Root:     snapshot.Root,
			Taken:    snapshot.Taken,
			Packages: len(snapshot.Packages),
			Digest:   digest.String(),
		})
	}
	fmt.Fprintf(env.stdout, "%s: %d packages (%s)\n", path, len(snapshot.Packages), digest.Short())
	return nil
}

// snapshotSummary is the structured output of snapshot and inspect.
type snapshotSummary struct {
	Path     string    `json:"path" yaml:"path"`
	Backend  string    `json:"backend" yaml:"backend"`
	Root     string    `json:"root" yaml:"root"`
	Taken    time.Time `json:"taken" yaml:"taken"`
	Packages int       `json:"packages" yaml:"packages"`
	Digest   string    `json:"digest" yaml:"digest"`
}

func inspectCmd(env *environment, args []string) error {
	flagSet := newFlagSet("inspect", env)
	var common commonFlags
	var diagnostic, list bool
	flagSet.BoolVar(&diagnostic, "cbor", false, "print the payload in CBOR diagnostic notation")
	flagSet.BoolVar(&list, "packages", false, "list the packages as well as the metadata")
	common.registerOutput(flagSet)

	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if err := requireArgs(flagSet, 1, "rpmlib inspect SNAPSHOT [--cbor]"); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	path := cfg.SnapshotPath(flagSet.Arg(0))

	if diagnostic {
		return printDiagnostic(env, path)
	}

	snapshot, err := inventory.ReadFile(path)
	if err != nil {
		return err
	}
	digest, err := snapshot.Digest()
	if err != nil {
		return err
	}

	out := newPrinter(env.stdout, cfg.Output)
	if out.structured() {
		if list {
			return out.value(snapshot)
		}
		return out.value(snapshotSummary{
			Path:     path,
			Backend:  snapshot.Backend,
			Root:     snapshot.Root,
			Taken:    snapshot.Taken,
			Packages: len(snapshot.Packages),
			Digest:   digest.String(),
		})
	}

	out.table([]string{"FIELD", "VALUE"}, [][]string{
		{"path", path},
		{"backend", snapshot.Backend},
		{"root", snapshot.Root},
		{"taken", snapshot.Taken.Format(time.RFC3339)},
		{"packages", strconv.Itoa(len(snapshot.Packages))},
		{"digest", digest.String()},
	})
	if list {
		for _, pkg := range snapshot.Packages {
			fmt.Fprintln(env.stdout, pkg.NEVRA())
		}
	}
	return nil
}

func printDiagnostic(env *environment, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	payload, err := inventory.ReadPayload(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	notation, err := codec.Diagnose(payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, notation)
	return nil
}

