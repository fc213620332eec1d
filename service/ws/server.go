// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package ws

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/random"

	"github.com/gorilla/websocket"
	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

const (
	sendChSize    = 256
	receiveChSize = 256
)

type UpgradeCb func(connID string, w http.ResponseWriter, r *http.Request) error

type Server struct {
	cfg       ServerConfig
	log       mlog.LoggerIFace
	conns     *connRegistry
	upgradeCb UpgradeCb
	connCb    func(open bool)
	sendCh    chan Message
	receiveCh chan Message
	wg        sync.WaitGroup

	sendMut sync.RWMutex
	closed  bool
}

var (
	ErrServerClosed = errors.New("server is closed")
	ErrSendChFull   = errors.New("send channel is full")
)

func NewServer(cfg ServerConfig, log mlog.LoggerIFace, opts ...Option) (*Server, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("log should not be nil")
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		conns:     newConnRegistry(),
		sendCh:    make(chan Message, sendChSize),
		receiveCh: make(chan Message, receiveChSize),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	s.wg.Add(1)
	go s.connWriter()

	return s, nil
}

// Send queues a message for a connection. Sending a CloseMessage drops the
// connection. It never blocks.
func (s *Server) Send(msg Message) error {
	s.sendMut.RLock()
	defer s.sendMut.RUnlock()

	if s.closed {
		return ErrServerClosed
	}

	select {
	case s.sendCh <- msg:
		return nil
	default:
		return ErrSendChFull
	}
}

// ReceiveCh returns a channel delivering messages from all connections,
// including OpenMessage and CloseMessage events. It must be drained until
// closed.
func (s *Server) ReceiveCh() <-chan Message {
	return s.receiveCh
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	connID := random.NewID()

	if s.upgradeCb != nil {
		if err := s.upgradeCb(connID, w, r); err != nil {
			s.log.Error("ws: upgradeCb failed", mlog.Err(err))
			return
		}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  s.cfg.ReadBufferSize,
		WriteBufferSize: s.cfg.WriteBufferSize,
	}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("ws: failed to upgrade connection", mlog.Err(err))
		return
	}
	ws.SetReadLimit(s.cfg.MaxMessageSizeBytes)

	conn := newConn(connID, ws)
	s.conns.add(conn)
	if s.connCb != nil {
		s.connCb(true)
	}
	s.receiveCh <- newOpenMessage(connID)

	defer func() {
		s.receiveCh <- newCloseMessage(connID)
		s.conns.remove(conn.id)
		close(conn.closeCh)
		if err := conn.close(); err != nil {
			s.log.Debug("ws: failed to close conn", mlog.String("connID", connID), mlog.Err(err))
		}
		if s.connCb != nil {
			s.connCb(false)
		}
	}()

	pingDone := make(chan struct{})
	defer close(pingDone)
	s.setReadDeadline(conn)
	ws.SetPongHandler(func(string) error {
		s.setReadDeadline(conn)
		return nil
	})
	go s.pinger(conn, pingDone)

	for {
		mt, data, err := conn.read()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, websocket.ErrCloseSent) {
				s.log.Debug("ws: read failed", mlog.String("connID", connID), mlog.Err(err))
			}
			return
		}
		s.receiveCh <- Message{
			ConnID: connID,
			Type:   mt,
			Data:   data,
		}
	}
}

func (s *Server) setReadDeadline(c *conn) {
	if err := c.ws.SetReadDeadline(time.Now().Add(2 * s.cfg.PingInterval)); err != nil {
		s.log.Error("ws: failed to set read deadline", mlog.String("connID", c.id), mlog.Err(err))
	}
}

func (s *Server) pinger(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.ping(); err != nil {
				s.log.Debug("ws: failed to send ping", mlog.String("connID", c.id), mlog.Err(err))
				return
			}
		case <-done:
			return
		}
	}
}

// Close drops all connections and closes the receive channel once every
// connection handler has returned.
func (s *Server) Close() {
	for _, conn := range s.conns.list() {
		if err := conn.close(); err != nil {
			s.log.Error("ws: failed to close conn", mlog.Err(err))
		}
		<-conn.closeCh
	}

	s.sendMut.Lock()
	s.closed = true
	close(s.sendCh)
	s.sendMut.Unlock()

	s.wg.Wait()
	close(s.receiveCh)
}

// ConnCount returns the number of currently open connections.
func (s *Server) ConnCount() int {
	return s.conns.len()
}

func (s *Server) connWriter() {
	defer s.wg.Done()

	for msg := range s.sendCh {
		conn := s.conns.get(msg.ConnID)
		if conn == nil {
			s.log.Debug("ws: conn not found for sending", mlog.String("connID", msg.ConnID))
			continue
		}

		if msg.Type == CloseMessage {
			if err := conn.shutdown(); err != nil {
				s.log.Debug("ws: failed to shut down conn", mlog.String("connID", msg.ConnID), mlog.Err(err))
			}
			continue
		}

		if err := conn.write(msg.Type, msg.Data); err != nil {
			s.log.Error("ws: failed to send message", mlog.String("connID", msg.ConnID), mlog.Err(err))
		}
	}
}
