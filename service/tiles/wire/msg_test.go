// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package wire

import (
	"testing"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/speaker"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeMessage(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		data, err := EncodeMessage(MessageTypePing, nil)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypePing, mt)
		require.Nil(t, payload)
	})

	t.Run("join", func(t *testing.T) {
		join := MessageJoin{CallID: "callA", UserID: "userA"}
		data, err := EncodeMessage(MessageTypeJoin, join)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeJoin, mt)
		require.Equal(t, join, payload)
	})

	t.Run("participant", func(t *testing.T) {
		w, h := 1280, 720
		p := tiles.Participant{
			ID:          "streamA",
			Name:        "Alice",
			HasAudio:    true,
			HasVideo:    true,
			VideoWidth:  &w,
			VideoHeight: &h,
		}
		data, err := EncodeMessage(MessageTypeParticipantAdded, p)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeParticipantAdded, mt)
		require.Equal(t, p, payload)
	})

	t.Run("snapshot", func(t *testing.T) {
		snap := tiles.Snapshot{
			DisplayOrder:  []string{"a", "b"},
			Hidden:        []string{"c"},
			HiddenPreview: []string{"c"},
			Pinned:        []string{"b"},
			ActiveSpeaker: "a",
			Talking:       true,
			Mode:          geometry.ActiveSpeaker,
			Device:        order.Mobile,
			Boxes: geometry.Boxes{
				Publisher:   geometry.Box{Top: 0, Left: 0, Width: 100, Height: 100},
				Subscribers: []geometry.Box{{Left: 100, Width: 100, Height: 100}, {Left: 200, Width: 100, Height: 100}},
				Hidden:      &geometry.Box{Left: 300, Width: 100, Height: 100},
			},
		}
		data, err := EncodeMessage(MessageTypeSnapshot, snap)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeSnapshot, mt)
		require.Equal(t, snap, payload)
	})

	t.Run("active speaker", func(t *testing.T) {
		msg := MessageActiveSpeaker{Current: &speaker.Speaker{ID: "a", MovingAverage: 0.5}}
		data, err := EncodeMessage(MessageTypeActiveSpeaker, msg)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeActiveSpeaker, mt)
		require.Equal(t, msg, payload)
	})

	t.Run("levels", func(t *testing.T) {
		msg := MessageLevels{Publisher: 0.25, Participants: map[string]float64{"a": 1, "b": 0}}
		data, err := EncodeMessage(MessageTypeLevels, msg)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeLevels, mt)
		require.Equal(t, msg, payload)
	})

	t.Run("participant list", func(t *testing.T) {
		list := NewParticipantList([]tiles.Participant{
			{ID: "b", Name: "Bob", HasAudio: true, IsPinned: true},
			{ID: "a", HasVideo: true},
		})
		require.Equal(t, []ParticipantListEntry{
			{ID: "b", Name: "Bob", HasAudio: true, Pinned: true},
			{ID: "a", HasVideo: true},
		}, list)

		data, err := EncodeMessage(MessageTypeParticipantList, list)
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeParticipantList, mt)
		require.Equal(t, list, payload)
	})

	t.Run("error", func(t *testing.T) {
		data, err := EncodeMessage(MessageTypeError, "bad things")
		require.NoError(t, err)

		mt, payload, err := DecodeMessage(data)
		require.NoError(t, err)
		require.Equal(t, MessageTypeError, mt)
		require.Equal(t, "bad things", payload)
	})
}

func TestDecodeMessage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, err := DecodeMessage(nil)
		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := DecodeMessage([]byte{45})
		require.EqualError(t, err, "unexpected message type: 45")
	})

	t.Run("missing payload", func(t *testing.T) {
		_, _, err := DecodeMessage([]byte{byte(MessageTypeAudioLevel)})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode audio_level message")
	})

	t.Run("mismatched payload", func(t *testing.T) {
		data, err := msgpack.Marshal(uint8(MessageTypeViewport))
		require.NoError(t, err)
		str, err := msgpack.Marshal("desktop")
		require.NoError(t, err)

		_, _, err = DecodeMessage(append(data, str...))
		require.Error(t, err)
	})
}

func TestMessageTypeString(t *testing.T) {
	require.Equal(t, "pin_toggle", MessageTypePinToggle.String())
	require.Equal(t, "snapshot", MessageTypeSnapshot.String())
	require.Equal(t, "unknown(200)", MessageType(200).String())
}
