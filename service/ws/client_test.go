// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package ws

import (
	"net/http"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		c, err := NewClient(ClientConfig{})
		require.Error(t, err)
		require.Nil(t, c)
	})

	t.Run("dial failure", func(t *testing.T) {
		c, err := NewClient(ClientConfig{URL: "ws://localhost:1/ws"})
		require.Error(t, err)
		require.Nil(t, c)
	})

	t.Run("nil dialer", func(t *testing.T) {
		c, err := NewClient(ClientConfig{URL: "ws://localhost:1/ws"}, WithDialer(nil))
		require.EqualError(t, err, "failed to apply option: dialer should not be nil")
		require.Nil(t, c)
	})

	t.Run("custom header", func(t *testing.T) {
		var agent string
		s, addr, shutdown := setupServer(t, WithUpgradeCb(func(_ string, _ http.ResponseWriter, r *http.Request) error {
			agent = r.Header.Get("User-Agent")
			return nil
		}))
		defer shutdown()

		dialer := &websocket.Dialer{HandshakeTimeout: waitTimeout}
		c, err := NewClient(ClientConfig{URL: wsURL(t, addr)},
			WithDialer(dialer), WithHeader(http.Header{"User-Agent": []string{"tilesd-test"}}))
		require.NoError(t, err)
		defer c.Close()

		require.Equal(t, OpenMessage, receive(t, s.ReceiveCh()).Type)
		require.Equal(t, "tilesd-test", agent)
	})

	t.Run("send after close", func(t *testing.T) {
		s, addr, shutdown := setupServer(t)
		defer shutdown()

		c := setupClient(t, addr)
		require.Equal(t, OpenMessage, receive(t, s.ReceiveCh()).Type)

		err := c.Close()
		require.NoError(t, err)

		err = c.Send(BinaryMessage, []byte("data"))
		require.EqualError(t, err, "failed to send message: connection is closed")
	})
}
