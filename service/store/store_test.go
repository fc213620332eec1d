// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNew(t *testing.T) {
	t.Run("empty data source", func(t *testing.T) {
		store, err := New("")
		require.EqualError(t, err, "store: data source should not be empty")
		require.Nil(t, store)
	})

	t.Run("valid", func(t *testing.T) {
		store, err := New(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, store)
		err = store.Close()
		require.NoError(t, err)
	})
}

func TestGetSet(t *testing.T) {
	dbDir := t.TempDir()

	store, err := New(dbDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Run("getting missing key", func(t *testing.T) {
		val, err := store.Get("missing")
		require.ErrorIs(t, err, ErrNotFound)
		require.Empty(t, val)
	})

	t.Run("empty key", func(t *testing.T) {
		err := store.Set("", []byte("value"))
		require.ErrorIs(t, err, ErrEmptyKey)

		_, err = store.Get("")
		require.ErrorIs(t, err, ErrEmptyKey)
	})

	t.Run("setting", func(t *testing.T) {
		err := store.Set("key", []byte("value"))
		require.NoError(t, err)

		val, err := store.Get("key")
		require.NoError(t, err)
		require.Equal(t, []byte("value"), val)
	})

	t.Run("update", func(t *testing.T) {
		err := store.Set("key", []byte("updated"))
		require.NoError(t, err)

		val, err := store.Get("key")
		require.NoError(t, err)
		require.Equal(t, []byte("updated"), val)
	})

	t.Run("getting after reopening", func(t *testing.T) {
		err := store.Close()
		require.NoError(t, err)

		store, err = New(dbDir)
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		val, err := store.Get("key")
		require.NoError(t, err)
		require.Equal(t, []byte("updated"), val)
	})
}

func TestDelete(t *testing.T) {
	store := setupStore(t)

	t.Run("delete empty", func(t *testing.T) {
		err := store.Delete("")
		require.Equal(t, ErrEmptyKey, err)
	})

	t.Run("delete missing", func(t *testing.T) {
		err := store.Delete("key")
		require.NoError(t, err)
	})

	t.Run("delete existing", func(t *testing.T) {
		err := store.Set("key", []byte("value"))
		require.NoError(t, err)

		err = store.Delete("key")
		require.NoError(t, err)

		val, err := store.Get("key")
		require.ErrorIs(t, err, ErrNotFound)
		require.Empty(t, val)
	})
}

func TestKeys(t *testing.T) {
	store := setupStore(t)

	for _, key := range []string{"a:1", "a:2", "b:1"} {
		require.NoError(t, store.Set(key, []byte("v")))
	}

	keys, err := store.Keys("a:")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a:1", "a:2"}, keys)

	keys, err = store.Keys("c:")
	require.NoError(t, err)
	require.Empty(t, keys)
}
