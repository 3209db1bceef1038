// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/rpmlib/lib/config"
	"github.com/bureau-foundation/rpmlib/lib/rpm"
	"github.com/bureau-foundation/rpmlib/lib/rpm/native"
)

func signCmd(env *environment, args []string) error {
	flagSet := newFlagSet("sign", env)
	var common commonFlags
	var keyIDFile string
	var remove bool
	var hashAlgorithm int
	flagSet.StringVar(&keyIDFile, "key-id-file", "", "file holding the signing key id, or - for stdin (default: %_gpg_name)")
	flagSet.BoolVar(&remove, "delete", false, "remove every signature instead of signing")
	flagSet.IntVar(&hashAlgorithm, "hash-algorithm", 0, "OpenPGP hash algorithm number, e.g. 8 for SHA256 (default: %_gpg_digest_algo)")
	flagSet.StringVar(&common.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	common.set = flagSet

	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		return usageError("expected at least one package\n\nUsage: rpmlib sign [--key-id-file PATH|-] [--delete] PACKAGE...")
	}
	if hashAlgorithm < 0 || hashAlgorithm > 255 {
		return usageError("--hash-algorithm must be between 0 and 255, got %d", hashAlgorithm)
	}
	if remove && keyIDFile != "" {
		return usageError("--key-id-file has no effect with --delete")
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}

	var keys *keyIDs
	if keyIDFile != "" {
		keys, err = loadKeyID(keyIDFile)
		if err != nil {
			return err
		}
		defer keys.Close()
	}

	if native.SignAvailable() {
		if err := configureNative(cfg, env.logger); err != nil {
			return err
		}
	}

	for _, path := range flagSet.Args() {
		options := native.SignOptions{HashAlgorithm: hashAlgorithm}
		if keys != nil {
			options.KeyID = keys.next()
		}

		action := "signed"
		if remove {
			action = "signature removed"
			err = native.DeleteSignature(path, options)
		} else {
			err = native.Sign(path, options)
		}
		if errors.Is(err, rpm.ErrUnavailable) {
			return fmt.Errorf("%s: %w (rebuild with -tags rpmlib,rpmsign)", path, err)
		}
		if err != nil {
			return err
		}
		env.logger.Info("package "+action, "path", path)
		fmt.Fprintf(env.stdout, "%s: %s\n", path, action)
	}
	return nil
}
