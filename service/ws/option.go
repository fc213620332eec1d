// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package ws

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

type Option func(s *Server) error

// WithUpgradeCb lets the caller set an optional callback to be called prior to
// performing the websocket upgrade. Returning an error rejects the connection.
func WithUpgradeCb(cb UpgradeCb) Option {
	return func(s *Server) error {
		s.upgradeCb = cb
		return nil
	}
}

// WithConnCb sets a callback invoked every time a connection opens or closes.
func WithConnCb(cb func(open bool)) Option {
	return func(s *Server) error {
		s.connCb = cb
		return nil
	}
}

type ClientOption func(c *Client) error

// WithDialer overrides the dialer used to establish the connection.
func WithDialer(d *websocket.Dialer) ClientOption {
	return func(c *Client) error {
		if d == nil {
			return fmt.Errorf("dialer should not be nil")
		}
		c.dialer = d
		return nil
	}
}

// WithHeader sets extra headers sent along with the upgrade request.
func WithHeader(h http.Header) ClientOption {
	return func(c *Client) error {
		c.header = h.Clone()
		return nil
	}
}
