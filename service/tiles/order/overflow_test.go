// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package order

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
	}
	return ids
}

func TestMaxVisible(t *testing.T) {
	require.Equal(t, 2, MaxVisible(Mobile, true))
	require.Equal(t, 3, MaxVisible(Mobile, false))
	require.Equal(t, 5, MaxVisible(Desktop, true))
	require.Equal(t, 9, MaxVisible(Desktop, false))
}

func TestSplitOverflow(t *testing.T) {
	t.Run("cap invariant", func(t *testing.T) {
		for _, device := range []DeviceClass{Mobile, Desktop} {
			for _, large := range []bool{true, false} {
				limit := MaxVisible(device, large)
				for n := 0; n <= 15; n++ {
					visible, hidden := SplitOverflow(makeIDs(n), device, large)
					require.Equal(t, n, len(visible)+len(hidden))
					require.LessOrEqual(t, len(visible), limit)
					if n <= limit {
						require.Empty(t, hidden)
					} else {
						require.Len(t, visible, limit-1)
					}
				}
			}
		}
	})

	t.Run("seven on desktop", func(t *testing.T) {
		ids := makeIDs(7)
		visible, hidden := SplitOverflow(ids, Desktop, false)
		require.Equal(t, ids, visible)
		require.Empty(t, hidden)

		visible, hidden = SplitOverflow(ids, Desktop, true)
		require.Equal(t, []string{"p0", "p1", "p2", "p3"}, visible)
		require.Equal(t, []string{"p4", "p5", "p6"}, hidden)
	})

	t.Run("mobile", func(t *testing.T) {
		visible, hidden := SplitOverflow(makeIDs(3), Mobile, true)
		require.Equal(t, []string{"p0"}, visible)
		require.Equal(t, []string{"p1", "p2"}, hidden)
	})
}

func TestHiddenPreview(t *testing.T) {
	require.Empty(t, HiddenPreview(nil))
	require.Equal(t, []string{"a"}, HiddenPreview([]string{"a"}))
	require.Equal(t, []string{"a", "b"}, HiddenPreview([]string{"a", "b", "c"}))
}

func TestParseDeviceClass(t *testing.T) {
	d, err := ParseDeviceClass("Mobile")
	require.NoError(t, err)
	require.Equal(t, Mobile, d)

	d, err = ParseDeviceClass("desktop")
	require.NoError(t, err)
	require.Equal(t, Desktop, d)

	_, err = ParseDeviceClass("tv")
	require.EqualError(t, err, `invalid device class "tv"`)
}
