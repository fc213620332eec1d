// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/wire"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/ws"
)

func (c *Client) send(mt wire.MessageType, payload any) error {
	if atomic.LoadInt32(&c.state) != clientStateInit {
		return ErrNotConnected
	}

	data, err := wire.EncodeMessage(mt, payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", mt, err)
	}

	if err := c.ws.Send(ws.BinaryMessage, data); err != nil {
		return fmt.Errorf("failed to send %s message: %w", mt, err)
	}

	return nil
}

func (c *Client) handleWSMsg(msg ws.Message) error {
	if msg.Type != ws.BinaryMessage {
		return fmt.Errorf("invalid ws message type %s", msg.Type)
	}

	mt, payload, err := wire.DecodeMessage(msg.Data)
	if err != nil {
		return err
	}

	switch mt {
	case wire.MessageTypePong:
		c.log.Debug("pong received")
	case wire.MessageTypeSnapshot:
		c.emit(SnapshotEvent, payload)
	case wire.MessageTypeActiveSpeaker:
		c.emit(ActiveSpeakerEvent, payload)
	case wire.MessageTypeTalking:
		c.emit(TalkingEvent, payload)
	case wire.MessageTypeLevels:
		c.emit(LevelsEvent, payload)
	case wire.MessageTypeParticipantList:
		c.emit(ParticipantListEvent, payload)
	case wire.MessageTypeError:
		msg, _ := payload.(string)
		c.emit(ErrorEvent, errors.New(msg))
	default:
		return fmt.Errorf("unexpected message type %s", mt)
	}

	return nil
}

func (c *Client) wsReader() {
	defer close(c.wsDoneCh)
	for {
		select {
		case msg, ok := <-c.ws.ReceiveCh():
			if !ok {
				if atomic.LoadInt32(&c.state) == clientStateInit {
					c.emit(DisconnectEvent, nil)
				}
				return
			}
			if err := c.handleWSMsg(msg); err != nil {
				c.log.Error("failed to handle ws message", slog.String("err", err.Error()))
			}
		case err := <-c.ws.ErrorCh():
			if err != nil {
				c.log.Debug("ws error", slog.String("err", err.Error()))
			}
		}
	}
}
