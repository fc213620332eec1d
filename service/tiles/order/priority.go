// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package order

import (
	"slices"
)

// Entry is the subset of participant state the priority policy looks at.
type Entry struct {
	ID          string
	Screenshare bool
	Pinned      bool
}

func rank(e Entry, activeSpeakerID string) int {
	switch {
	case e.Screenshare:
		return 0
	case e.Pinned:
		return 1
	case activeSpeakerID != "" && e.ID == activeSpeakerID:
		return 2
	default:
		return 3
	}
}

// Compare orders entries by display priority: screenshare, then pinned, then
// the active speaker, then everybody else. It returns a negative number when a
// should be displayed before b and 0 when neither is preferred.
func Compare(a, b Entry, activeSpeakerID string) int {
	return rank(a, activeSpeakerID) - rank(b, activeSpeakerID)
}

// SortByPriority stable-sorts entries in place so that equally ranked entries
// keep their relative (insertion) order.
func SortByPriority(entries []Entry, activeSpeakerID string) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return Compare(a, b, activeSpeakerID)
	})
}

// IDs returns the ids of entries in order.
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
