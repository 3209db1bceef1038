// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"slices"
	"strings"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// Change is a package whose version moved between two snapshots.
type Change struct {
	Key string      `json:"key" yaml:"key"`
	Old rpm.Package `json:"old" yaml:"old"`
	New rpm.Package `json:"new" yaml:"new"`
}

// Diff is the difference between two snapshots. Every list is sorted by
// key, then NEVRA. Lists from Compare are never nil, so they encode as
// empty arrays.
type Diff struct {
	Added   []rpm.Package `json:"added" yaml:"added"`
	Removed []rpm.Package `json:"removed" yaml:"removed"`
	Changed []Change      `json:"changed" yaml:"changed"`
}

// Empty reports whether the snapshots held the same packages.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare reports how after differs from before. Packages are grouped by
// name.arch. Within a group, versions present on only one side are
// added or removed, except that a single removal paired with a single
// addition is reported as a change (an upgrade or downgrade). Groups
// holding several versions, such as kernels, report each version
// separately.
func Compare(before, after *Snapshot) Diff {
	oldGroups := groupByKey(before.Packages)
	newGroups := groupByKey(after.Packages)

	keys := make([]string, 0, len(oldGroups)+len(newGroups))
	for key := range oldGroups {
		keys = append(keys, key)
	}
	for key := range newGroups {
		if _, seen := oldGroups[key]; !seen {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	diff := Diff{
		Added:   []rpm.Package{},
		Removed: []rpm.Package{},
		Changed: []Change{},
	}
	for _, key := range keys {
		removed := versionsOnlyIn(oldGroups[key], newGroups[key])
		added := versionsOnlyIn(newGroups[key], oldGroups[key])

		if len(removed) == 1 && len(added) == 1 {
			diff.Changed = append(diff.Changed, Change{Key: key, Old: removed[0], New: added[0]})
			continue
		}
		diff.Removed = append(diff.Removed, removed...)
		diff.Added = append(diff.Added, added...)
	}
	return diff
}

func groupByKey(packages []rpm.Package) map[string][]rpm.Package {
	groups := make(map[string][]rpm.Package)
	for _, pkg := range packages {
		key := pkg.Key()
		groups[key] = append(groups[key], pkg)
	}
	for _, group := range groups {
		slices.SortFunc(group, func(a, b rpm.Package) int {
			return strings.Compare(a.NEVRA(), b.NEVRA())
		})
	}
	return groups
}

// versionsOnlyIn returns the packages of side whose EVR does not appear
// in other.
func versionsOnlyIn(side, other []rpm.Package) []rpm.Package {
	var only []rpm.Package
	for _, pkg := range side {
		evr := pkg.EVR()
		if !slices.ContainsFunc(other, func(candidate rpm.Package) bool { return candidate.EVR() == evr }) {
			only = append(only, pkg)
		}
	}
	return only
}
