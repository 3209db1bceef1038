// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/rpmlib/lib/secret"
	"github.com/bureau-foundation/rpmlib/lib/zeroize"
)

const zeroCheckPattern = 0xA5

// zeroCheckResult is one row of zero-check output.
type zeroCheckResult struct {
	Check     string `json:"check" yaml:"check"`
	Mechanism string `json:"mechanism" yaml:"mechanism"`
	Size      int    `json:"size" yaml:"size"`
	Zeroed    bool   `json:"zeroed" yaml:"zeroed"`
}

func zeroCheckCmd(env *environment, args []string) error {
	flagSet := newFlagSet("zero-check", env)
	var common commonFlags
	var size int
	flagSet.IntVar(&size, "size", 4096, "bytes to fill and zero")
	common.registerOutput(flagSet)

	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if err := rejectArgs(flagSet); err != nil {
		return err
	}
	if size <= 0 {
		return usageError("--size must be positive, got %d", size)
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}

	results := []zeroCheckResult{
		checkBytes(size),
		checkValue(size),
	}

	out := newPrinter(env.stdout, cfg.Output)
	if out.structured() {
		if err := out.value(results); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(results))
		for index, result := range results {
			state := out.styled(colorAdded, "ok")
			if !result.Zeroed {
				state = out.styled(colorRemoved, "FAILED")
			}
			rows[index] = []string{result.Check, result.Mechanism, strconv.Itoa(result.Size), state}
		}
		out.table([]string{"CHECK", "MECHANISM", "SIZE", "RESULT"}, rows)
	}

	for _, result := range results {
		if !result.Zeroed {
			return fmt.Errorf("%s: %d-byte region not zeroed", result.Check, result.Size)
		}
	}
	return nil
}

// checkBytes zeroes a heap slice directly.
func checkBytes(size int) zeroCheckResult {
	region := patterned(size)
	zeroize.Bytes(region)
	return zeroCheckResult{Check: "bytes", Mechanism: zeroize.Mechanism(), Size: size, Zeroed: allZero(region)}
}

// checkValue zeroes a slice through secret.Value.Close and inspects it
// through an alias kept before the value took ownership.
func checkValue(size int) zeroCheckResult {
	region := patterned(size)
	value := secret.NewValue(secret.Bytes(region))
	value.Close()
	return zeroCheckResult{
		Check:     "secret.Value",
		Mechanism: zeroize.Mechanism(),
		Size:      size,
		Zeroed:    value.Closed() && allZero(region),
	}
}

func patterned(size int) []byte {
	region := make([]byte, size)
	for index := range region {
		region[index] = zeroCheckPattern
	}
	return region
}

func allZero(region []byte) bool {
	for _, b := range region {
		if b != 0 {
			return false
		}
	}
	return true
}
