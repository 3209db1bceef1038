// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// commandError carries an exit code. An empty message means the
// command already reported the failure and only the code matters.
type commandError struct {
	code int
	err  error
}

func (e *commandError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *commandError) Unwrap() error { return e.err }

// ExitCode returns the process exit status for the error.
func (e *commandError) ExitCode() int { return e.code }

// usageError reports invalid flags or arguments (exit status 2).
func usageError(format string, args ...any) error {
	return &commandError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

// silentFailure exits 1 without printing anything further.
func silentFailure() error {
	return &commandError{code: exitFailure}
}
