// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/rpmlib/lib/inventory"
)

func diffCmd(env *environment, args []string) error {
	flagSet := newFlagSet("diff", env)
	var common commonFlags
	var jsonOutput, exitStatus bool
	flagSet.BoolVar(&jsonOutput, "json", false, "shorthand for --format json")
	flagSet.BoolVar(&exitStatus, "exit-code", false, "exit 1 when the snapshots differ")
	common.registerOutput(flagSet)

	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if err := requireArgs(flagSet, 2, "rpmlib diff OLD NEW"); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if jsonOutput {
		cfg.Output.Format = "json"
	}

	before, err := inventory.ReadFile(cfg.SnapshotPath(flagSet.Arg(0)))
	if err != nil {
		return err
	}
	after, err := inventory.ReadFile(cfg.SnapshotPath(flagSet.Arg(1)))
	if err != nil {
		return err
	}
	diff := inventory.Compare(before, after)

	out := newPrinter(env.stdout, cfg.Output)
	if out.structured() {
		if err := out.value(diff); err != nil {
			return err
		}
	} else if diff.Empty() {
		fmt.Fprintln(env.stdout, "no changes")
	} else {
		var rows [][]string
		for _, pkg := range diff.Added {
			rows = append(rows, []string{out.styled(colorAdded, "+"), pkg.NEVRA(), ""})
		}
		for _, pkg := range diff.Removed {
			rows = append(rows, []string{out.styled(colorRemoved, "-"), pkg.NEVRA(), ""})
		}
		for _, change := range diff.Changed {
			rows = append(rows, []string{out.styled(colorChanged, "~"), change.Key, change.Old.EVR() + " -> " + change.New.EVR()})
		}
		out.table([]string{"", "PACKAGE", "VERSION"}, rows)
		fmt.Fprintf(env.stdout, "%d added, %d removed, %d changed\n", len(diff.Added), len(diff.Removed), len(diff.Changed))
	}

	if exitStatus && !diff.Empty() {
		return silentFailure()
	}
	return nil
}
