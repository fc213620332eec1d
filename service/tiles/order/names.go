// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package order

import (
	"slices"
	"strings"
)

// CompareNames is used by the participant list only. Empty names sort last,
// everything else is compared byte-wise (case-sensitive).
func CompareNames(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}

// SortByName returns a copy of items sorted with CompareNames applied to name(item).
func SortByName[T any](items []T, name func(T) string) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return CompareNames(name(a), name(b))
	})
	return sorted
}
