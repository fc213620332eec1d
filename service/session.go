// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/store"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/speaker"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/wire"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/ws"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
	"golang.org/x/time/rate"
)

const (
	sessionMsgChSize = 256
	dropWarnInterval = 10 * time.Second
)

var (
	errAlreadyJoined = errors.New("session already joined")
	errNotJoined     = errors.New("session not joined")
)

type sessionMsg struct {
	mt      wire.MessageType
	payload any
}

// session is the layout state of a single viewer, bound to one WebSocket
// connection. The call engine is only ever touched by the run goroutine.
type session struct {
	connID string
	srv    *Service
	log    mlog.LoggerIFace
	call   *tiles.Call

	callID string
	userID string

	limiter     *rate.Limiter
	warnLimiter *rate.Limiter
	dropped     int

	lastLevels wire.MessageLevels
	lastList   []wire.ParticipantListEntry

	msgCh     chan sessionMsg
	closeCh   chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

func newSession(srv *Service, connID string) (*session, error) {
	us := &session{
		connID:      connID,
		srv:         srv,
		log:         srv.log.With(mlog.String("connID", connID)),
		limiter:     rate.NewLimiter(rate.Limit(srv.cfg.Session.AudioLevelRateLimit), srv.cfg.Session.AudioLevelBurst),
		warnLimiter: rate.NewLimiter(rate.Every(dropWarnInterval), 1),
		msgCh:       make(chan sessionMsg, sessionMsgChSize),
		closeCh:     make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	var err error
	us.call, err = tiles.NewCall(srv.cfg.Layout, us.log,
		tiles.WithObserver(us),
		tiles.WithMetrics(srv.metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create call: %w", err)
	}

	return us, nil
}

func (us *session) run() {
	defer close(us.doneCh)

	ticker := time.NewTicker(us.srv.cfg.Session.LevelsInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-us.msgCh:
			us.handle(msg)
		case <-ticker.C:
			us.sendLevels()
		case <-us.closeCh:
			return
		}
	}
}

// close stops the session and waits for its goroutine to exit.
func (us *session) close() {
	us.closeOnce.Do(func() {
		close(us.closeCh)
	})
	<-us.doneCh
}

func isLossy(mt wire.MessageType) bool {
	return mt == wire.MessageTypeAudioLevel || mt == wire.MessageTypePublisherAudioLevel
}

// enqueue decodes a client message and hands it to the run goroutine. Audio
// level samples are rate limited and dropped under pressure; every other
// message is always delivered.
func (us *session) enqueue(data []byte) {
	mt, payload, err := wire.DecodeMessage(data)
	if err != nil {
		us.srv.metrics.IncWSMessageDecodeFailures()
		us.log.Debug("tilesd: failed to decode message", mlog.Err(err))
		us.sendError(err)
		return
	}
	us.srv.metrics.IncWSMessages(mt.String(), "in")

	msg := sessionMsg{mt: mt, payload: payload}

	if isLossy(mt) {
		if !us.limiter.Allow() {
			us.drop(mt)
			return
		}
		select {
		case us.msgCh <- msg:
		default:
			us.drop(mt)
		}
		return
	}

	select {
	case us.msgCh <- msg:
	case <-us.closeCh:
	}
}

func (us *session) drop(mt wire.MessageType) {
	us.srv.metrics.IncDroppedMessages(mt.String())
	us.dropped++
	if us.warnLimiter.Allow() {
		us.log.Warn("tilesd: dropping audio level messages", mlog.Int("dropped", us.dropped))
		us.dropped = 0
	}
}

func (us *session) handle(msg sessionMsg) {
	switch msg.mt {
	case wire.MessageTypePing:
		us.send(wire.MessageTypePong, nil)
		return
	case wire.MessageTypeJoin:
		join, ok := msg.payload.(wire.MessageJoin)
		if !ok {
			us.sendError(fmt.Errorf("unexpected payload type %T for join message", msg.payload))
			return
		}
		if err := us.join(join); err != nil {
			us.sendError(err)
		}
		return
	}

	if us.callID == "" {
		us.sendError(fmt.Errorf("%w: unexpected %s message", errNotJoined, msg.mt))
		return
	}

	ev, err := wire.ToEvent(msg.mt, msg.payload)
	if err != nil {
		us.sendError(err)
		return
	}

	changed, err := us.call.Handle(ev)
	if err != nil {
		us.log.Debug("tilesd: failed to handle event", mlog.String("type", string(ev.Type())), mlog.Err(err))
		us.sendError(err)
		return
	}

	switch ev.(type) {
	case tiles.PinToggle, tiles.LayoutModeChanged:
		us.savePreferences()
	}

	if changed {
		us.sendSnapshot()
	}
	us.sendParticipants()
}

func (us *session) join(msg wire.MessageJoin) error {
	if us.callID != "" {
		return errAlreadyJoined
	}
	if msg.CallID == "" {
		return fmt.Errorf("invalid CallID value: should not be empty")
	}
	if msg.UserID == "" {
		return fmt.Errorf("invalid UserID value: should not be empty")
	}

	us.callID = msg.CallID
	us.userID = msg.UserID

	us.log.Debug("tilesd: session joined",
		mlog.String("callID", us.callID),
		mlog.String("userID", us.userID))

	prefs, err := store.LoadPreferences(us.srv.store, us.callID, us.userID)
	if err != nil {
		us.log.Error("tilesd: failed to load preferences", mlog.Err(err))
	}

	if prefs.LayoutMode != "" {
		if _, err := us.call.Handle(tiles.LayoutModeChanged{Mode: geometry.LayoutMode(prefs.LayoutMode)}); err != nil {
			us.log.Warn("tilesd: ignoring saved layout mode", mlog.Err(err))
		}
	}

	if len(prefs.Pinned) > 0 {
		if _, err := us.call.Handle(tiles.PinsRestored{ParticipantIDs: prefs.Pinned}); err != nil {
			us.log.Warn("tilesd: ignoring saved pins", mlog.Err(err))
		}
	}

	us.sendSnapshot()
	us.sendParticipants()

	return nil
}

func (us *session) savePreferences() {
	if us.callID == "" {
		return
	}

	snapshot := us.call.Snapshot()
	prefs := store.Preferences{
		LayoutMode: string(snapshot.Mode),
		Pinned:     us.call.Pins(),
	}
	if err := store.SavePreferences(us.srv.store, us.callID, us.userID, prefs); err != nil {
		us.log.Error("tilesd: failed to save preferences", mlog.Err(err))
	}
}

func (us *session) send(mt wire.MessageType, payload any) {
	data, err := wire.EncodeMessage(mt, payload)
	if err != nil {
		us.log.Error("tilesd: failed to encode message", mlog.String("type", mt.String()), mlog.Err(err))
		return
	}

	if err := us.srv.wsServer.Send(ws.Message{
		ConnID: us.connID,
		Type:   ws.BinaryMessage,
		Data:   data,
	}); err != nil {
		us.log.Error("tilesd: failed to send message", mlog.String("type", mt.String()), mlog.Err(err))
		return
	}

	us.srv.metrics.IncWSMessages(mt.String(), "out")
}

func (us *session) sendError(err error) {
	us.send(wire.MessageTypeError, err.Error())
}

func (us *session) sendSnapshot() {
	us.send(wire.MessageTypeSnapshot, us.call.Snapshot())
}

func (us *session) sendLevels() {
	if us.callID == "" {
		return
	}
	levels := wire.MessageLevels{
		Publisher:    us.call.PublisherLevel(),
		Participants: us.call.Levels(),
	}
	if levels.Publisher == us.lastLevels.Publisher && maps.Equal(levels.Participants, us.lastLevels.Participants) {
		return
	}
	us.lastLevels = levels
	us.send(wire.MessageTypeLevels, levels)
}

func (us *session) ActiveSpeakerChanged(change speaker.Change) {
	us.send(wire.MessageTypeActiveSpeaker, wire.MessageActiveSpeaker{
		Previous: change.Previous,
		Current:  change.New,
	})
}

func (us *session) TalkingChanged(participantID string, talking bool) {
	us.send(wire.MessageTypeTalking, wire.MessageTalking{
		ParticipantID: participantID,
		Talking:       talking,
	})
}

// sendParticipants sends the name-sorted participant list when it changed.
func (us *session) sendParticipants() {
	list := wire.NewParticipantList(us.call.Participants())
	if slices.Equal(list, us.lastList) {
		return
	}
	us.lastList = list
	us.send(wire.MessageTypeParticipantList, list)
}
