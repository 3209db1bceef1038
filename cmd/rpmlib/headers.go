// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

func headersCmd(env *environment, args []string) error {
	flagSet := newFlagSet("headers", env)
	var common commonFlags
	var check bool
	var includeDir string
	flagSet.BoolVar(&check, "check", false, "verify each header exists under the include directory")
	flagSet.StringVar(&includeDir, "include-dir", "", "include directory for --check (default: rpm.include_dir)")
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
	out := newPrinter(env.stdout, cfg.Output)

	if !check {
		if out.structured() {
			return out.value(rpm.Headers)
		}
		rows := make([][]string, len(rpm.Headers))
		for index, header := range rpm.Headers {
			note := header.Purpose
			if header.Excluded != "" {
				note = "excluded: " + header.Excluded
			}
			rows[index] = []string{header.Path, string(header.Library), buildTagLabel(header.BuildTag), note}
		}
		out.table([]string{"HEADER", "LIBRARY", "BUILD TAG", "PURPOSE"}, rows)
		return nil
	}

	if includeDir == "" {
		includeDir = cfg.RPM.IncludeDir
	}
	statuses, err := rpm.CheckHeaders(includeDir)
	if err != nil {
		return err
	}
	missing := rpm.Missing(statuses)

	if out.structured() {
		if err := out.value(statuses); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(statuses))
		for index, status := range statuses {
			state := out.styled(colorAdded, "ok")
			if !status.Present {
				state = out.styled(colorRemoved, "missing")
			}
			rows[index] = []string{status.Header.Path, buildTagLabel(status.Header.BuildTag), state}
		}
		out.table([]string{"HEADER", "BUILD TAG", "STATUS"}, rows)
	}

	if len(missing) == 0 {
		return nil
	}
	paths := make([]string, len(missing))
	for index, header := range missing {
		paths[index] = header.Path
	}
	return fmt.Errorf("%d header(s) missing under %s: %s (install the rpm development package)",
		len(missing), includeDir, strings.Join(paths, ", "))
}

func buildTagLabel(tag string) string {
	if tag == "" {
		return "rpmlib"
	}
	return "rpmlib," + tag
}
