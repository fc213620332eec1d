// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package wire

import (
	"testing"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"

	"github.com/stretchr/testify/require"
)

func TestToEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		w, h := 1920, 1080
		tcs := []struct {
			name     string
			mt       MessageType
			payload  any
			expected tiles.Event
		}{
			{
				name:     "participant added",
				mt:       MessageTypeParticipantAdded,
				payload:  tiles.Participant{ID: "a"},
				expected: tiles.ParticipantAdded{Participant: tiles.Participant{ID: "a"}},
			},
			{
				name:     "participant removed",
				mt:       MessageTypeParticipantRemoved,
				payload:  "a",
				expected: tiles.ParticipantRemoved{ParticipantID: "a"},
			},
			{
				name:     "audio level with timestamp",
				mt:       MessageTypeAudioLevel,
				payload:  MessageAudioLevel{ParticipantID: "a", Level: 0.5, Timestamp: 1000},
				expected: tiles.AudioLevel{ParticipantID: "a", Level: 0.5, At: time.UnixMilli(1000)},
			},
			{
				name:     "audio level without timestamp",
				mt:       MessageTypeAudioLevel,
				payload:  MessageAudioLevel{ParticipantID: "a", Level: 0.5},
				expected: tiles.AudioLevel{ParticipantID: "a", Level: 0.5},
			},
			{
				name:     "layout mode",
				mt:       MessageTypeLayoutMode,
				payload:  "Active-Speaker",
				expected: tiles.LayoutModeChanged{Mode: geometry.ActiveSpeaker},
			},
			{
				name:     "viewport",
				mt:       MessageTypeViewport,
				payload:  MessageViewport{Device: "Mobile", Width: 390, Height: 844},
				expected: tiles.ViewportChanged{Device: order.Mobile, Container: geometry.Dimensions{Width: 390, Height: 844}},
			},
			{
				name:     "publisher",
				mt:       MessageTypePublisher,
				payload:  MessagePublisher{Screenshare: &geometry.Size{Width: &w, Height: &h}},
				expected: tiles.PublisherChanged{Screenshare: &geometry.Size{Width: &w, Height: &h}},
			},
		}

		for _, tc := range tcs {
			t.Run(tc.name, func(t *testing.T) {
				ev, err := ToEvent(tc.mt, tc.payload)
				require.NoError(t, err)
				require.Equal(t, tc.expected, ev)
			})
		}
	})

	t.Run("invalid device", func(t *testing.T) {
		_, err := ToEvent(MessageTypeViewport, MessageViewport{Device: "tv"})
		require.EqualError(t, err, `invalid device class "tv"`)
	})

	t.Run("payload mismatch", func(t *testing.T) {
		_, err := ToEvent(MessageTypePinToggle, 42)
		require.EqualError(t, err, "unexpected payload type int for pin_toggle message")
	})

	t.Run("no event", func(t *testing.T) {
		_, err := ToEvent(MessageTypeJoin, MessageJoin{})
		require.EqualError(t, err, "message type join does not carry an event")
	})
}
