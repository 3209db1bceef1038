// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"fmt"
	"path"
	"regexp"
)

// MatchMode selects how [Query.Pattern] is compared. The non-All modes
// correspond to librpm's rpmMireMode values.
type MatchMode int

const (
	// MatchAll selects every package; Tag and Pattern are ignored.
	MatchAll MatchMode = iota
	// MatchExact compares the whole field with strcmp semantics.
	MatchExact
	// MatchGlob uses fnmatch-style patterns (*, ?, [...]).
	MatchGlob
	// MatchRegex uses POSIX extended regular expressions, unanchored.
	MatchRegex
)

func (m MatchMode) String() string {
	switch m {
	case MatchAll:
		return "all"
	case MatchExact:
		return "exact"
	case MatchGlob:
		return "glob"
	case MatchRegex:
		return "regex"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Query selects packages whose Tag field matches Pattern under Mode.
type Query struct {
	Tag     Tag
	Mode    MatchMode
	Pattern string
}

// All returns a query matching every installed package.
func All() Query {
	return Query{Tag: TagName, Mode: MatchAll}
}

// Find returns an exact-match query.
func Find(tag Tag, key string) Query {
	return Query{Tag: tag, Mode: MatchExact, Pattern: key}
}

// Glob returns a glob query.
func Glob(tag Tag, pattern string) Query {
	return Query{Tag: tag, Mode: MatchGlob, Pattern: pattern}
}

// Regex returns a regular-expression query.
func Regex(tag Tag, pattern string) Query {
	return Query{Tag: tag, Mode: MatchRegex, Pattern: pattern}
}

func (q Query) String() string {
	if q.Mode == MatchAll {
		return "all packages"
	}
	return fmt.Sprintf("%s %s %q", q.Tag, q.Mode, q.Pattern)
}

// Validate rejects patterns librpm would refuse: NUL bytes (the
// pattern crosses into C as a NUL-terminated string), malformed globs
// and regular expressions, and unknown modes.
func (q Query) Validate() error {
	if q.Mode == MatchAll {
		return nil
	}
	for index := 0; index < len(q.Pattern); index++ {
		if q.Pattern[index] == 0 {
			return fmt.Errorf("rpm: %s pattern contains a NUL byte", q.Mode)
		}
	}
	switch q.Mode {
	case MatchExact:
		return nil
	case MatchGlob:
		if _, err := path.Match(q.Pattern, ""); err != nil {
			return fmt.Errorf("rpm: invalid glob %q: %w", q.Pattern, err)
		}
		return nil
	case MatchRegex:
		if _, err := regexp.CompilePOSIX(q.Pattern); err != nil {
			return fmt.Errorf("rpm: invalid regex %q: %w", q.Pattern, err)
		}
		return nil
	default:
		return fmt.Errorf("rpm: unknown match mode %d", int(q.Mode))
	}
}

// Record is anything a query can be evaluated against: the string
// forms of the value stored under a tag, one per array element.
type Record interface {
	Values(tag Tag) ([]string, bool)
}

// Matcher compiles the query into a predicate over packages, for
// backends that filter in Go rather than inside librpm.
func (q Query) Matcher() (func(Package) bool, error) {
	match, err := q.RecordMatcher()
	if err != nil {
		return nil, err
	}
	return func(p Package) bool { return match(p) }, nil
}

// RecordMatcher compiles the query into a predicate over records. A
// record matches when any element stored under the tag matches, as
// librpm's iterator filter does for array tags. A record without the
// tag never matches.
func (q Query) RecordMatcher() (func(Record) bool, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var compare func(string) bool
	switch q.Mode {
	case MatchAll:
		return func(Record) bool { return true }, nil
	case MatchExact:
		compare = func(value string) bool { return value == q.Pattern }
	case MatchGlob:
		compare = func(value string) bool {
			matched, _ := path.Match(q.Pattern, value)
			return matched
		}
	case MatchRegex:
		expression := regexp.MustCompilePOSIX(q.Pattern)
		compare = expression.MatchString
	}

	tag := q.Tag
	return func(r Record) bool {
		values, ok := r.Values(tag)
		if !ok {
			return false
		}
		for _, value := range values {
			if compare(value) {
				return true
			}
		}
		return false
	}, nil
}
