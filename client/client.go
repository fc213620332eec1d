// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/wire"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/ws"
)

type EventHandler func(ctx any) error

type EventType string

const (
	// SnapshotEvent carries a tiles.Snapshot.
	SnapshotEvent EventType = "Snapshot"
	// ActiveSpeakerEvent carries a wire.MessageActiveSpeaker.
	ActiveSpeakerEvent EventType = "ActiveSpeaker"
	// TalkingEvent carries a wire.MessageTalking.
	TalkingEvent EventType = "Talking"
	// LevelsEvent carries a wire.MessageLevels.
	LevelsEvent EventType = "Levels"
	// ParticipantListEvent carries a []wire.ParticipantListEntry sorted by name.
	ParticipantListEvent EventType = "ParticipantList"
	// ErrorEvent carries the error reported by the server.
	ErrorEvent EventType = "Error"

	DisconnectEvent EventType = "Disconnect"
	CloseEvent      EventType = "Close"
)

func (e EventType) IsValid() bool {
	switch e {
	case SnapshotEvent, ActiveSpeakerEvent, TalkingEvent, LevelsEvent,
		ParticipantListEvent, ErrorEvent,
		DisconnectEvent, CloseEvent:
		return true
	default:
		return false
	}
}

const (
	clientStateNew int32 = iota
	clientStateInit
	clientStateClosing
	clientStateClosed
)

var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotConnected      = errors.New("client is not connected")
)

// Client drives a layout session on a tilesd instance and exposes its admin
// HTTP API.
type Client struct {
	cfg Config
	log *slog.Logger

	handlers map[EventType]EventHandler

	httpClient *http.Client

	ws       *ws.Client
	wsDoneCh chan struct{}

	state int32

	mut sync.RWMutex
}

type Option func(c *Client) error

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// New initializes and returns a new client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Parse(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	c := &Client{
		cfg:      cfg,
		handlers: make(map[EventType]EventHandler),
		wsDoneCh: make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.log == nil {
		c.log = slog.Default()
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: httpRequestTimeout}
	}

	return c, nil
}

// Connect opens the layout session and joins the configured call. The first
// SnapshotEvent follows shortly after.
func (c *Client) Connect() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if !atomic.CompareAndSwapInt32(&c.state, clientStateNew, clientStateInit) {
		return fmt.Errorf("client is already initialized")
	}

	wsClient, err := ws.NewClient(ws.ClientConfig{URL: c.cfg.wsURL})
	if err != nil {
		atomic.StoreInt32(&c.state, clientStateClosed)
		return fmt.Errorf("failed to connect: %w", err)
	}
	c.ws = wsClient

	go c.wsReader()

	return c.send(wire.MessageTypeJoin, wire.MessageJoin{
		CallID: c.cfg.CallID,
		UserID: c.cfg.UserID,
	})
}

// Close permanently disconnects the client.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.state, clientStateInit, clientStateClosing) {
		return fmt.Errorf("client is not initialized")
	}

	err := c.ws.Close()
	<-c.wsDoneCh

	atomic.StoreInt32(&c.state, clientStateClosed)
	c.emit(CloseEvent, nil)

	if err != nil {
		return fmt.Errorf("failed to close ws: %w", err)
	}

	return nil
}

// On is used to subscribe to any events fired by the client.
// Note: there can only be one subscriber per event type.
func (c *Client) On(eventType EventType, h EventHandler) error {
	if !eventType.IsValid() {
		return fmt.Errorf("invalid event type %q", eventType)
	}

	c.mut.Lock()
	defer c.mut.Unlock()

	if _, ok := c.handlers[eventType]; ok {
		return ErrAlreadySubscribed
	}

	c.handlers[eventType] = h

	return nil
}

func (c *Client) emit(eventType EventType, ctx any) {
	c.mut.RLock()
	handler := c.handlers[eventType]
	c.mut.RUnlock()
	if handler != nil {
		if err := handler(ctx); err != nil {
			c.log.Error("failed to handle event",
				slog.Any("type", eventType), slog.String("err", err.Error()))
		}
	}
}
