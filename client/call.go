// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/wire"
)

func (c *Client) Ping() error {
	return c.send(wire.MessageTypePing, nil)
}

func (c *Client) AddParticipant(p tiles.Participant) error {
	return c.send(wire.MessageTypeParticipantAdded, p)
}

func (c *Client) UpdateParticipant(p tiles.Participant) error {
	return c.send(wire.MessageTypeParticipantUpdated, p)
}

func (c *Client) RemoveParticipant(participantID string) error {
	return c.send(wire.MessageTypeParticipantRemoved, participantID)
}

// SendAudioLevel reports a raw audio level sample in [0, 1] for a
// participant. Samples may be dropped by the server under load.
func (c *Client) SendAudioLevel(participantID string, level float64) error {
	return c.send(wire.MessageTypeAudioLevel, wire.MessageAudioLevel{
		ParticipantID: participantID,
		Level:         level,
		Timestamp:     time.Now().UnixMilli(),
	})
}

func (c *Client) SendPublisherAudioLevel(level float64) error {
	return c.send(wire.MessageTypePublisherAudioLevel, level)
}

func (c *Client) TogglePin(participantID string) error {
	return c.send(wire.MessageTypePinToggle, participantID)
}

func (c *Client) SetLayoutMode(mode geometry.LayoutMode) error {
	return c.send(wire.MessageTypeLayoutMode, string(mode))
}

func (c *Client) SetViewport(device order.DeviceClass, width, height int) error {
	return c.send(wire.MessageTypeViewport, wire.MessageViewport{
		Device: string(device),
		Width:  width,
		Height: height,
	})
}

// SetPublisher updates the local camera size and, while sharing, the local
// screenshare size. A nil screenshare stops sharing.
func (c *Client) SetPublisher(camera geometry.Size, screenshare *geometry.Size) error {
	return c.send(wire.MessageTypePublisher, wire.MessagePublisher{
		Camera:      camera,
		Screenshare: screenshare,
	})
}
