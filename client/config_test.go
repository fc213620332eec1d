// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigParse(t *testing.T) {
	t.Run("empty struct", func(t *testing.T) {
		var cfg Config
		err := cfg.Parse()
		require.EqualError(t, err, "invalid URL value: should not be empty")
	})

	t.Run("invalid URL scheme", func(t *testing.T) {
		cfg := Config{URL: "ws://host"}
		err := cfg.Parse()
		require.EqualError(t, err, `invalid URL scheme "ws"`)
	})

	t.Run("missing CallID", func(t *testing.T) {
		cfg := Config{URL: "http://host"}
		err := cfg.Parse()
		require.EqualError(t, err, "invalid CallID value: should not be empty")
	})

	t.Run("missing UserID", func(t *testing.T) {
		cfg := Config{URL: "http://host", CallID: "callA"}
		err := cfg.Parse()
		require.EqualError(t, err, "invalid UserID value: should not be empty")
	})

	t.Run("slashes and spaces in URL", func(t *testing.T) {
		cfg := Config{URL: " http://host/subpath////  ", CallID: "callA", UserID: "userA"}
		err := cfg.Parse()
		require.NoError(t, err)
		require.Equal(t, "http://host/subpath", cfg.URL)
		require.Equal(t, "ws://host/subpath/ws", cfg.wsURL)
	})

	t.Run("wsURL", func(t *testing.T) {
		cfg := Config{URL: "https://tiles:8045/", CallID: "callA", UserID: "userA"}
		err := cfg.Parse()
		require.NoError(t, err)
		require.Equal(t, "wss://tiles:8045/ws", cfg.wsURL)
	})
}
