// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package native binds librpm through cgo.
//
// The binding is opt-in: it is compiled only with cgo enabled and the
// "rpmlib" build tag, and links against the rpm pkg-config module
// (librpm and librpmio). Two further tags pull in the optional
// libraries:
//
//	rpmbuild   ParseSpec, via librpmbuild
//	rpmsign    Sign and DeleteSignature, via librpmsign
//
// Without the tags every entry point returns [rpm.ErrUnavailable] and
// [Available] reports false, so callers can select the pure-Go reader in
// lib/rpm/rpmdb instead. The headers included by the cgo preambles are
// the enabled entries of [rpm.Headers].
//
// librpm keeps its configuration, macro tables, and open databases in
// process-global state and is not safe for concurrent use. Every call
// into it is serialized behind a single package mutex; [DB.Match] and
// [DB.Headers] hold that mutex for the whole database walk.
//
// Typical use:
//
//	db, err := native.Open(native.Options{Root: "/", Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	packages, err := db.Match(ctx, rpm.Glob(rpm.TagName, "rpm-*"))
package native
