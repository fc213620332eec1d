// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package wire

import (
	"fmt"
	"strings"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
)

// ToEvent converts a decoded client message into the engine event it carries.
// Ping and Join are handled by the session and have no engine counterpart.
func ToEvent(mt MessageType, payload any) (tiles.Event, error) {
	switch mt {
	case MessageTypeParticipantAdded:
		p, ok := payload.(tiles.Participant)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.ParticipantAdded{Participant: p}, nil
	case MessageTypeParticipantUpdated:
		p, ok := payload.(tiles.Participant)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.ParticipantUpdated{Participant: p}, nil
	case MessageTypeParticipantRemoved:
		id, ok := payload.(string)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.ParticipantRemoved{ParticipantID: id}, nil
	case MessageTypeAudioLevel:
		msg, ok := payload.(MessageAudioLevel)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		ev := tiles.AudioLevel{
			ParticipantID: msg.ParticipantID,
			Level:         msg.Level,
		}
		if msg.Timestamp > 0 {
			ev.At = time.UnixMilli(msg.Timestamp)
		}
		return ev, nil
	case MessageTypePublisherAudioLevel:
		level, ok := payload.(float64)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.PublisherAudioLevel{Level: level}, nil
	case MessageTypePinToggle:
		id, ok := payload.(string)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.PinToggle{ParticipantID: id}, nil
	case MessageTypeLayoutMode:
		mode, ok := payload.(string)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.LayoutModeChanged{Mode: geometry.LayoutMode(strings.ToLower(mode))}, nil
	case MessageTypeViewport:
		msg, ok := payload.(MessageViewport)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		device, err := order.ParseDeviceClass(msg.Device)
		if err != nil {
			return nil, err
		}
		return tiles.ViewportChanged{
			Device:    device,
			Container: geometry.Dimensions{Width: msg.Width, Height: msg.Height},
		}, nil
	case MessageTypePublisher:
		msg, ok := payload.(MessagePublisher)
		if !ok {
			return nil, payloadError(mt, payload)
		}
		return tiles.PublisherChanged{Camera: msg.Camera, Screenshare: msg.Screenshare}, nil
	}

	return nil, fmt.Errorf("message type %s does not carry an event", mt)
}

func payloadError(mt MessageType, payload any) error {
	return fmt.Errorf("unexpected payload type %T for %s message", payload, mt)
}
