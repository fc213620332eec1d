// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package tiles

import (
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
)

type EventType string

const (
	ParticipantAddedEvent    EventType = "ParticipantAdded"
	ParticipantUpdatedEvent  EventType = "ParticipantUpdated"
	ParticipantRemovedEvent  EventType = "ParticipantRemoved"
	AudioLevelEvent          EventType = "AudioLevel"
	PublisherAudioLevelEvent EventType = "PublisherAudioLevel"
	PinToggleEvent           EventType = "PinToggle"
	PinsRestoredEvent        EventType = "PinsRestored"
	LayoutModeChangedEvent   EventType = "LayoutModeChanged"
	ViewportChangedEvent     EventType = "ViewportChanged"
	PublisherChangedEvent    EventType = "PublisherChanged"
)

// Event is a discrete input to a Call. Every event is processed synchronously
// and followed by a full layout pass.
type Event interface {
	Type() EventType
}

type ParticipantAdded struct {
	Participant Participant
}

// ParticipantUpdated replaces everything but the pin state, which is owned by the Call.
type ParticipantUpdated struct {
	Participant Participant
}

type ParticipantRemoved struct {
	ParticipantID string
}

// AudioLevel is a raw level sample in [0, 1]. A zero At means now.
type AudioLevel struct {
	ParticipantID string
	Level         float64
	At            time.Time
}

type PublisherAudioLevel struct {
	Level float64
}

type PinToggle struct {
	ParticipantID string
}

// PinsRestored re-applies previously saved pins. Ids of participants that
// have not joined yet are kept pending until they do.
type PinsRestored struct {
	ParticipantIDs []string
}

type LayoutModeChanged struct {
	Mode geometry.LayoutMode
}

type ViewportChanged struct {
	Device    order.DeviceClass
	Container geometry.Dimensions
}

// PublisherChanged carries the local camera size and, while sharing, the
// local screenshare size.
type PublisherChanged struct {
	Camera      geometry.Size
	Screenshare *geometry.Size
}

func (ParticipantAdded) Type() EventType    { return ParticipantAddedEvent }
func (ParticipantUpdated) Type() EventType  { return ParticipantUpdatedEvent }
func (ParticipantRemoved) Type() EventType  { return ParticipantRemovedEvent }
func (AudioLevel) Type() EventType          { return AudioLevelEvent }
func (PublisherAudioLevel) Type() EventType { return PublisherAudioLevelEvent }
func (PinToggle) Type() EventType           { return PinToggleEvent }
func (PinsRestored) Type() EventType        { return PinsRestoredEvent }
func (LayoutModeChanged) Type() EventType   { return LayoutModeChangedEvent }
func (ViewportChanged) Type() EventType     { return ViewportChangedEvent }
func (PublisherChanged) Type() EventType    { return PublisherChangedEvent }
