// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

func queryCmd(ctx context.Context, env *environment, args []string) error {
	flagSet := newFlagSet("query", env)
	var common commonFlags
	var name, glob, regex, tagName string
	var long bool
	flagSet.StringVar(&name, "name", "", "exact value to match")
	flagSet.StringVar(&glob, "glob", "", "glob pattern to match (*, ?, [...])")
	flagSet.StringVar(&regex, "regex", "", "POSIX extended regular expression to match")
	flagSet.StringVar(&tagName, "tag", "NAME", "header tag to match against")
	flagSet.BoolVar(&long, "long", false, "include summary, size and install time in text output")
	common.registerSource(flagSet)
	common.registerOutput(flagSet)

	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if err := rejectArgs(flagSet); err != nil {
		return err
	}

	query, err := buildQuery(name, glob, regex, tagName, flagSet.Changed("name"))
	if err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}

	source, backend, err := openSource(cfg, env.logger)
	if err != nil {
		return err
	}
	defer source.Close()

	packages, err := source.Match(ctx, query)
	if err != nil {
		return err
	}
	env.logger.Debug("query complete", "backend", backend, "query", query.String(), "packages", len(packages))

	if len(packages) == 0 && query.Mode == rpm.MatchExact {
		fmt.Fprintf(env.stderr, "package %s is not installed\n", query.Pattern)
		return silentFailure()
	}

	out := newPrinter(env.stdout, cfg.Output)
	if out.structured() {
		if packages == nil {
			packages = []rpm.Package{}
		}
		return out.value(packages)
	}

	if !long {
		for _, pkg := range packages {
			fmt.Fprintln(env.stdout, pkg.NEVRA())
		}
		return nil
	}

	rows := make([][]string, len(packages))
	for index, pkg := range packages {
		installed := ""
		if pkg.InstallTime > 0 {
			installed = time.Unix(pkg.InstallTime, 0).UTC().Format(time.DateTime)
		}
		rows[index] = []string{pkg.NEVRA(), strconv.FormatInt(pkg.Size, 10), installed, pkg.Summary}
	}
	out.table([]string{"PACKAGE", "SIZE", "INSTALLED", "SUMMARY"}, rows)
	return nil
}

// buildQuery turns the mutually exclusive match flags into a query.
// No match flag lists every package.
func buildQuery(name, glob, regex, tagName string, nameSet bool) (rpm.Query, error) {
	tag, err := rpm.ParseTag(tagName)
	if err != nil {
		return rpm.Query{}, usageError("--tag: %v", err)
	}

	selected := 0
	for _, set := range []bool{nameSet, glob != "", regex != ""} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return rpm.Query{}, usageError("--name, --glob and --regex are mutually exclusive")
	}

	var query rpm.Query
	switch {
	case nameSet:
		query = rpm.Find(tag, name)
	case glob != "":
		query = rpm.Glob(tag, glob)
	case regex != "":
		query = rpm.Regex(tag, regex)
	default:
		query = rpm.All()
	}
	if err := query.Validate(); err != nil {
		return rpm.Query{}, usageError("%v", err)
	}
	return query, nil
}
