// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package ws

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWaitTime = 10 * time.Second

// conn wraps a gorilla connection. Data frames must only be written from a
// single goroutine; control frames can be written concurrently.
type conn struct {
	id      string
	ws      *websocket.Conn
	closeCh chan struct{}
}

func newConn(id string, ws *websocket.Conn) *conn {
	return &conn{
		id:      id,
		ws:      ws,
		closeCh: make(chan struct{}),
	}
}

func (c *conn) write(mt MessageType, data []byte) error {
	frameType := websocket.TextMessage
	if mt == BinaryMessage {
		frameType = websocket.BinaryMessage
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWaitTime)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := c.ws.WriteMessage(frameType, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// read blocks until the next data frame. Control frames are handled by
// gorilla internally and never surface here.
func (c *conn) read() (MessageType, []byte, error) {
	for {
		frameType, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, nil, err
		}
		switch frameType {
		case websocket.TextMessage:
			return TextMessage, data, nil
		case websocket.BinaryMessage:
			return BinaryMessage, data, nil
		}
	}
}

func (c *conn) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWaitTime))
}

// shutdown sends a normal closure frame before dropping the connection.
func (c *conn) shutdown() error {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.ws.WriteControl(websocket.CloseMessage, data, time.Now().Add(writeWaitTime)); err != nil {
		c.ws.Close()
		return fmt.Errorf("failed to send close frame: %w", err)
	}
	return c.close()
}

func (c *conn) close() error {
	return c.ws.Close()
}

// connRegistry indexes live connections by id.
type connRegistry struct {
	mut   sync.RWMutex
	conns map[string]*conn
}

func newConnRegistry() *connRegistry {
	return &connRegistry{
		conns: make(map[string]*conn),
	}
}

func (r *connRegistry) add(c *conn) bool {
	if c == nil {
		return false
	}
	r.mut.Lock()
	defer r.mut.Unlock()
	if _, ok := r.conns[c.id]; ok {
		return false
	}
	r.conns[c.id] = c
	return true
}

func (r *connRegistry) remove(connID string) bool {
	r.mut.Lock()
	defer r.mut.Unlock()
	if _, ok := r.conns[connID]; !ok {
		return false
	}
	delete(r.conns, connID)
	return true
}

func (r *connRegistry) get(connID string) *conn {
	r.mut.RLock()
	defer r.mut.RUnlock()
	return r.conns[connID]
}

func (r *connRegistry) list() []*conn {
	r.mut.RLock()
	defer r.mut.RUnlock()
	conns := make([]*conn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	return conns
}

func (r *connRegistry) len() int {
	r.mut.RLock()
	defer r.mut.RUnlock()
	return len(r.conns)
}
