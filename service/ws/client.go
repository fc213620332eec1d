// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package ws

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

const (
	wsConnClosed int32 = iota
	wsConnOpen
	wsConnClosing
)

const clientMaxReadBytes = 1024 * 1024

// Client is a WebSocket client speaking to a Server. It's used by tools and
// tests to drive layout sessions.
type Client struct {
	cfg       ClientConfig
	dialer    *websocket.Dialer
	header    http.Header
	conn      *conn
	sendCh    chan Message
	receiveCh chan Message
	errorCh   chan error
	wg        sync.WaitGroup
	connState atomic.Int32
}

// NewClient dials the configured URL and starts the connection loops.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	c := &Client{
		cfg:       cfg,
		dialer:    websocket.DefaultDialer,
		sendCh:    make(chan Message, sendChSize),
		receiveCh: make(chan Message, receiveChSize),
		errorCh:   make(chan error, 1),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	ws, _, err := c.dialer.Dial(cfg.URL, c.header)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}
	ws.SetReadLimit(clientMaxReadBytes)
	c.conn = newConn(cfg.ConnID, ws)

	c.connState.Store(wsConnOpen)
	c.wg.Add(2)
	go c.connReader()
	go c.connWriter()

	return c, nil
}

func (c *Client) connReader() {
	defer func() {
		close(c.receiveCh)
		close(c.conn.closeCh)
		c.wg.Done()
	}()

	for {
		mt, data, err := c.conn.read()
		if err != nil {
			c.sendError(fmt.Errorf("failed to read message: %w", err))
			return
		}
		c.receiveCh <- Message{
			Type: mt,
			Data: data,
		}
	}
}

func (c *Client) connWriter() {
	defer c.wg.Done()

	for {
		select {
		case msg := <-c.sendCh:
			if err := c.conn.write(msg.Type, msg.Data); err != nil {
				c.sendError(err)
			}
		case <-c.conn.closeCh:
			return
		}
	}
}

func (c *Client) sendError(err error) {
	if c.connState.Load() != wsConnOpen {
		return
	}
	select {
	case c.errorCh <- err:
	default:
	}
}

// Send queues a message for the server. It never blocks.
func (c *Client) Send(mt MessageType, data []byte) error {
	if c.connState.Load() != wsConnOpen {
		return fmt.Errorf("failed to send message: connection is closed")
	}

	select {
	case c.sendCh <- Message{Type: mt, Data: data}:
		return nil
	default:
		return fmt.Errorf("failed to send message: channel is full")
	}
}

// ReceiveCh returns a channel that should be used to receive messages from the
// underlying ws connection. It's closed when the connection drops.
func (c *Client) ReceiveCh() <-chan Message {
	return c.receiveCh
}

// ErrorCh returns a channel that is used to receive client errors
// asynchronously.
func (c *Client) ErrorCh() <-chan error {
	return c.errorCh
}

// Close sends a close frame and waits for the connection loops to exit.
func (c *Client) Close() error {
	c.connState.Store(wsConnClosing)
	err := c.conn.shutdown()
	c.wg.Wait()
	c.connState.Store(wsConnClosed)
	return err
}
