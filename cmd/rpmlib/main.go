// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// rpmlib queries installed-package databases, records and compares
// package inventories, and checks the librpm development headers the
// native binding is built against.
//
// Usage:
//
//	rpmlib query [--name N | --glob G | --regex R] [--tag T] [flags]
//	rpmlib headers [--check] [--include-dir DIR] [--json]
//	rpmlib snapshot --output FILE [--compression zstd|lz4|none] [flags]
//	rpmlib inspect FILE [--cbor]
//	rpmlib diff OLD NEW [--json]
//	rpmlib zero-check [--size N]
//	rpmlib version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// environment carries the process streams and logger into commands.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	env := &environment{stdout: stdout, stderr: stderr, logger: newLogger(stderr)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "query":
		err = queryCmd(ctx, env, args)
	case "headers":
		err = headersCmd(env, args)
	case "snapshot":
		err = snapshotCmd(ctx, env, args)
	case "inspect":
		err = inspectCmd(env, args)
	case "diff":
		err = diffCmd(env, args)
	case "sign":
		err = signCmd(env, args)
	case "zero-check":
		err = zeroCheckCmd(env, args)
	case "version", "--version", "-v":
		err = versionCmd(env, args)
	case "help", "--help", "-h":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return exitUsage
	}

	return exitCode(env, err)
}

// newLogger writes text records to a terminal and JSON records
// otherwise. RPMLIB_DEBUG enables debug records.
func newLogger(stderr io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("RPMLIB_DEBUG") != "" {
		options.Level = slog.LevelDebug
	}
	if isTerminal(stderr) {
		return slog.New(slog.NewTextHandler(stderr, options))
	}
	return slog.New(slog.NewJSONHandler(stderr, options))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func exitCode(env *environment, err error) int {
	if err == nil {
		return exitOK
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		if message := err.Error(); message != "" {
			fmt.Fprintf(env.stderr, "Error: %s\n", message)
		}
		return coded.ExitCode()
	}
	fmt.Fprintf(env.stderr, "Error: %v\n", err)
	return exitFailure
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `rpmlib - Query rpm databases and track package inventories

USAGE
    rpmlib <command> [flags] [args...]

COMMANDS
    query       List installed packages matching a name, glob, or regex
    headers     Show or check the librpm headers the native binding uses
    snapshot    Record the installed package set to a snapshot file
    inspect     Show a snapshot's metadata, or dump its CBOR payload
    diff        Compare two snapshots
    sign        Add or remove package signatures (needs librpmsign)
    zero-check  Verify the secure zero primitive on this platform
    version     Show version and compiled-in backends

EXAMPLES
    # Which rpm packages are installed?
    rpmlib query --glob 'rpm*'

    # Read an image's database without librpm
    rpmlib query --backend rpmdb --root /mnt/image --format json

    # Record the package set before and after an upgrade
    rpmlib snapshot --output before
    dnf upgrade -y
    rpmlib snapshot --output after
    rpmlib diff before after

    # Sign with a key id kept out of argv
    rpmlib sign --key-id-file - pkg.rpm <<<"$KEY_ID"

    # Will the native binding build here?
    rpmlib headers --check

ENVIRONMENT
    RPMLIB_CONFIG  Path to the YAML config file (or use --config)
    RPMLIB_DEBUG   Enable debug logging

Exit status is 0 on success, 1 on failure, and 2 on a usage error.
`)
}
