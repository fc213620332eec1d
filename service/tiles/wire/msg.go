// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package wire

import (
	"bytes"
	"fmt"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/speaker"

	"github.com/vmihailenco/msgpack/v5"
)

// Message structure is flat.
// The byte in front of the buffer identifies the type of message (MessageType).
// The remaining data (if present) constitutes the payload (e.g. MessageJoin).

// ProtocolVersion is bumped whenever a message layout changes in a way
// older clients can't decode.
const ProtocolVersion = 1

type MessageType uint8

// Client to server.
const (
	MessageTypePing                MessageType = iota + 1 // no payload
	MessageTypeJoin                                       // MessageJoin
	MessageTypeParticipantAdded                           // tiles.Participant
	MessageTypeParticipantUpdated                         // tiles.Participant
	MessageTypeParticipantRemoved                         // string
	MessageTypeAudioLevel                                 // MessageAudioLevel
	MessageTypePublisherAudioLevel                        // float64
	MessageTypePinToggle                                  // string
	MessageTypeLayoutMode                                 // string
	MessageTypeViewport                                   // MessageViewport
	MessageTypePublisher                                  // MessagePublisher
)

// Server to client.
const (
	MessageTypePong          MessageType = iota + 64 // no payload
	MessageTypeSnapshot                              // tiles.Snapshot
	MessageTypeActiveSpeaker                         // MessageActiveSpeaker
	MessageTypeTalking                               // MessageTalking
	MessageTypeLevels                                // MessageLevels
	MessageTypeError                                 // string
	MessageTypeParticipantList                       // []ParticipantListEntry
)

var messageTypeNames = map[MessageType]string{
	MessageTypePing:                "ping",
	MessageTypeJoin:                "join",
	MessageTypeParticipantAdded:    "participant_added",
	MessageTypeParticipantUpdated:  "participant_updated",
	MessageTypeParticipantRemoved:  "participant_removed",
	MessageTypeAudioLevel:          "audio_level",
	MessageTypePublisherAudioLevel: "publisher_audio_level",
	MessageTypePinToggle:           "pin_toggle",
	MessageTypeLayoutMode:          "layout_mode",
	MessageTypeViewport:            "viewport",
	MessageTypePublisher:           "publisher",
	MessageTypePong:                "pong",
	MessageTypeSnapshot:            "snapshot",
	MessageTypeActiveSpeaker:       "active_speaker",
	MessageTypeTalking:             "talking",
	MessageTypeLevels:              "levels",
	MessageTypeError:               "error",
	MessageTypeParticipantList:     "participant_list",
}

func (mt MessageType) String() string {
	if name, ok := messageTypeNames[mt]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(mt))
}

// Supported payloads

type MessageJoin struct {
	CallID string `msgpack:"call_id"`
	UserID string `msgpack:"user_id"`
}

// MessageAudioLevel carries a raw level sample. Timestamp is in unix
// milliseconds; zero means the time of arrival.
type MessageAudioLevel struct {
	ParticipantID string  `msgpack:"participant_id"`
	Level         float64 `msgpack:"level"`
	Timestamp     int64   `msgpack:"timestamp,omitempty"`
}

type MessageViewport struct {
	Device string `msgpack:"device"`
	Width  int    `msgpack:"width"`
	Height int    `msgpack:"height"`
}

type MessagePublisher struct {
	Camera      geometry.Size  `msgpack:"camera"`
	Screenshare *geometry.Size `msgpack:"screenshare,omitempty"`
}

type MessageActiveSpeaker struct {
	Previous *speaker.Speaker `msgpack:"previous,omitempty"`
	Current  *speaker.Speaker `msgpack:"current,omitempty"`
}

type MessageTalking struct {
	ParticipantID string `msgpack:"participant_id"`
	Talking       bool   `msgpack:"talking"`
}

// MessageLevels holds the log-scaled levels used to draw audio meters.
type MessageLevels struct {
	Publisher    float64            `msgpack:"publisher"`
	Participants map[string]float64 `msgpack:"participants"`
}

// ParticipantListEntry is a row of the participant list, which is sorted by
// name rather than by display priority.
type ParticipantListEntry struct {
	ID       string `msgpack:"id"`
	Name     string `msgpack:"name,omitempty"`
	HasAudio bool   `msgpack:"has_audio"`
	HasVideo bool   `msgpack:"has_video"`
	Pinned   bool   `msgpack:"pinned"`
}

// NewParticipantList keeps the order of participants.
func NewParticipantList(participants []tiles.Participant) []ParticipantListEntry {
	list := make([]ParticipantListEntry, len(participants))
	for i, p := range participants {
		list[i] = ParticipantListEntry{
			ID:       p.ID,
			Name:     p.Name,
			HasAudio: p.HasAudio,
			HasVideo: p.HasVideo,
			Pinned:   p.IsPinned,
		}
	}
	return list
}

func EncodeMessage(mt MessageType, payload any) ([]byte, error) {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	var buf bytes.Buffer
	enc.ResetWriter(&buf)

	var err error
	// payload is optional
	if payload != nil {
		err = enc.EncodeMulti(mt, payload)
	} else {
		err = enc.EncodeUint8(uint8(mt))
	}

	return buf.Bytes(), err
}

func decodePayload[T any](dec *msgpack.Decoder, mt MessageType) (MessageType, any, error) {
	var payload T
	if err := dec.Decode(&payload); err != nil {
		return 0, nil, fmt.Errorf("failed to decode %s message: %w", mt, err)
	}
	return mt, payload, nil
}

func DecodeMessage(msg []byte) (MessageType, any, error) {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.ResetReader(bytes.NewReader(msg))

	// Decode MessageType
	t, err := dec.DecodeUint8()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to decode message type: %w", err)
	}

	// Decode payload (if needed)
	switch mt := MessageType(t); mt {
	case MessageTypePing, MessageTypePong:
		return mt, nil, nil
	case MessageTypeJoin:
		return decodePayload[MessageJoin](dec, mt)
	case MessageTypeParticipantAdded, MessageTypeParticipantUpdated:
		return decodePayload[tiles.Participant](dec, mt)
	case MessageTypeParticipantRemoved, MessageTypePinToggle, MessageTypeLayoutMode, MessageTypeError:
		return decodePayload[string](dec, mt)
	case MessageTypeAudioLevel:
		return decodePayload[MessageAudioLevel](dec, mt)
	case MessageTypePublisherAudioLevel:
		return decodePayload[float64](dec, mt)
	case MessageTypeViewport:
		return decodePayload[MessageViewport](dec, mt)
	case MessageTypePublisher:
		return decodePayload[MessagePublisher](dec, mt)
	case MessageTypeSnapshot:
		return decodePayload[tiles.Snapshot](dec, mt)
	case MessageTypeActiveSpeaker:
		return decodePayload[MessageActiveSpeaker](dec, mt)
	case MessageTypeTalking:
		return decodePayload[MessageTalking](dec, mt)
	case MessageTypeLevels:
		return decodePayload[MessageLevels](dec, mt)
	case MessageTypeParticipantList:
		return decodePayload[[]ParticipantListEntry](dec, mt)
	}

	return 0, nil, fmt.Errorf("unexpected message type: %d", t)
}
