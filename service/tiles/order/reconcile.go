// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package order

import (
	"errors"
	"fmt"
)

var ErrInvariantViolation = errors.New("display order invariant violation")

// Reconcile computes the next display order from the previous one and the new
// priority-ordered set of visible ids. Ids present in both keep their slot,
// newcomers take the slots freed by removed ids (in next order) and are
// appended once no freed slot is left. Slots left empty are compacted away.
func Reconcile(prev, next []string) []string {
	inNext := make(map[string]struct{}, len(next))
	for _, id := range next {
		inNext[id] = struct{}{}
	}
	inPrev := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		inPrev[id] = struct{}{}
	}

	var added []string
	for _, id := range next {
		if _, ok := inPrev[id]; !ok {
			added = append(added, id)
			// Guard against duplicates in next.
			inPrev[id] = struct{}{}
		}
	}

	result := make([]string, 0, len(next))
	seen := make(map[string]struct{}, len(next))
	for _, id := range prev {
		_, keep := inNext[id]
		if _, dup := seen[id]; keep && !dup {
			seen[id] = struct{}{}
			result = append(result, id)
			continue
		}
		// Slot is free: the id left or is a duplicate.
		if len(added) > 0 {
			result = append(result, added[0])
			seen[added[0]] = struct{}{}
			added = added[1:]
		}
	}

	return append(result, added...)
}

// Verify checks that result is a permutation of next.
func Verify(result, next []string) error {
	if len(result) != len(next) {
		return fmt.Errorf("%w: expected %d ids, got %d", ErrInvariantViolation, len(next), len(result))
	}

	expected := make(map[string]int, len(next))
	for _, id := range next {
		expected[id]++
	}
	for _, id := range result {
		if expected[id] == 0 {
			return fmt.Errorf("%w: unexpected or duplicate id %q", ErrInvariantViolation, id)
		}
		expected[id]--
	}

	return nil
}

// Clamp repairs a result that failed Verify by dropping unknown or duplicate
// ids and appending missing ones in next order.
func Clamp(result, next []string) []string {
	allowed := make(map[string]struct{}, len(next))
	for _, id := range next {
		allowed[id] = struct{}{}
	}

	clamped := make([]string, 0, len(next))
	seen := make(map[string]struct{}, len(next))
	for _, id := range result {
		if _, ok := allowed[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		clamped = append(clamped, id)
	}

	for _, id := range next {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		clamped = append(clamped, id)
	}

	return clamped
}
