// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreferences(t *testing.T) {
	store := setupStore(t)

	t.Run("missing ids", func(t *testing.T) {
		_, err := LoadPreferences(store, "", "userA")
		require.EqualError(t, err, "invalid callID value: should not be empty")

		err = SavePreferences(store, "callA", "", Preferences{})
		require.EqualError(t, err, "invalid userID value: should not be empty")
	})

	t.Run("not saved yet", func(t *testing.T) {
		prefs, err := LoadPreferences(store, "callA", "userA")
		require.NoError(t, err)
		require.Empty(t, prefs)
	})

	t.Run("save and load", func(t *testing.T) {
		prefs := Preferences{
			LayoutMode: "active-speaker",
			Pinned:     []string{"streamA", "streamB"},
		}
		err := SavePreferences(store, "callA", "userA", prefs)
		require.NoError(t, err)

		loaded, err := LoadPreferences(store, "callA", "userA")
		require.NoError(t, err)
		require.Equal(t, prefs, loaded)

		other, err := LoadPreferences(store, "callA", "userB")
		require.NoError(t, err)
		require.Empty(t, other)
	})

	t.Run("corrupted", func(t *testing.T) {
		err := store.Set("prefs:callB:userA", []byte{0xc1})
		require.NoError(t, err)

		_, err = LoadPreferences(store, "callB", "userA")
		require.Error(t, err)
	})

	t.Run("delete call", func(t *testing.T) {
		require.NoError(t, SavePreferences(store, "callC", "userA", Preferences{LayoutMode: "grid"}))
		require.NoError(t, SavePreferences(store, "callC", "userB", Preferences{LayoutMode: "grid"}))

		err := DeleteCallPreferences(store, "callC")
		require.NoError(t, err)

		prefs, err := LoadPreferences(store, "callC", "userA")
		require.NoError(t, err)
		require.Empty(t, prefs)

		prefs, err = LoadPreferences(store, "callA", "userA")
		require.NoError(t, err)
		require.Equal(t, "active-speaker", prefs.LayoutMode)
	})
}
