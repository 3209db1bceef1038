// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/rpmlib/lib/rpm/native"
	"github.com/bureau-foundation/rpmlib/lib/version"
)

func versionCmd(env *environment, args []string) error {
	flagSet := newFlagSet("version", env)
	var short bool
	flagSet.BoolVar(&short, "short", false, "print only the version number")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if err := rejectArgs(flagSet); err != nil {
		return err
	}

	if short {
		fmt.Fprintln(env.stdout, version.Short())
		return nil
	}
	fmt.Fprintf(env.stdout, "rpmlib %s\n", version.Full(features()...))
	return nil
}

// features lists the optional backends compiled into this binary.
func features() []string {
	list := []string{"rpmdb"}
	if native.Available() {
		list = append(list, "native")
	}
	if native.SignAvailable() {
		list = append(list, "sign")
	}
	if native.BuildAvailable() {
		list = append(list, "spec")
	}
	return list
}
