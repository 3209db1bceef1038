// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rpmlib/lib/config"
)

// commonFlags are the configuration overrides shared by subcommands.
// A flag left unset keeps the value from the config file.
type commonFlags struct {
	set *pflag.FlagSet

	configPath string
	backend    string
	root       string
	dbPath     string
	format     string
	color      string
}

func newFlagSet(name string, env *environment) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("rpmlib "+name, pflag.ContinueOnError)
	flagSet.SetOutput(env.stderr)
	flagSet.SortFlags = false
	return flagSet
}

// registerSource adds the flags that choose which database to read.
func (c *commonFlags) registerSource(flagSet *pflag.FlagSet) {
	c.set = flagSet
	flagSet.StringVar(&c.backend, "backend", "", "database reader: auto, native, or rpmdb")
	flagSet.StringVar(&c.root, "root", "", "installation root whose database is read")
	flagSet.StringVar(&c.dbPath, "db-path", "", "database location, overriding discovery under --root")
}

// registerOutput adds --config, --format and --color.
func (c *commonFlags) registerOutput(flagSet *pflag.FlagSet) {
	c.set = flagSet
	flagSet.StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVarP(&c.format, "format", "o", "", "output format: text, json, or yaml")
	flagSet.StringVar(&c.color, "color", "", "colour tables: auto, always, or never")
}

// parseFlags parses args, mapping pflag failures to usage errors. A nil
// error with help=true means --help was printed.
func parseFlags(flagSet *pflag.FlagSet, args []string) (help bool, err error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, &commandError{code: exitUsage, err: err}
	}
	return false, nil
}

// load reads the config file named by --config or RPMLIB_CONFIG (the
// defaults when neither is set), applies explicit flags, and validates
// the result.
func (c *commonFlags) load() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv(config.EnvironmentVariable)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.changed("backend") {
		cfg.Backend = config.Backend(c.backend)
	}
	if c.changed("root") {
		cfg.Root = c.root
	}
	if c.changed("db-path") {
		cfg.RPM.DBPath = c.dbPath
	}
	if c.changed("format") {
		cfg.Output.Format = c.format
	}
	if c.changed("color") {
		cfg.Output.Color = c.color
	}

	if err := cfg.Validate(); err != nil {
		return nil, usageError("invalid configuration: %v", err)
	}
	return cfg, nil
}

func (c *commonFlags) changed(name string) bool {
	return c.set != nil && c.set.Lookup(name) != nil && c.set.Changed(name)
}

// requireArgs checks the positional argument count.
func requireArgs(flagSet *pflag.FlagSet, want int, usage string) error {
	if flagSet.NArg() != want {
		return usageError("expected %d argument(s), got %d\n\nUsage: %s", want, flagSet.NArg(), usage)
	}
	return nil
}

func rejectArgs(flagSet *pflag.FlagSet) error {
	if flagSet.NArg() > 0 {
		return usageError("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
	}
	return nil
}
