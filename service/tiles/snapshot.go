// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package tiles

import (
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
)

// Snapshot is the result of a single layout pass. All fields are derived from
// the same state.
type Snapshot struct {
	// DisplayOrder holds the ids of the on-screen subscribers, slot by slot.
	DisplayOrder []string `msgpack:"display_order"`
	// Hidden holds the ids summarized by the placeholder tile, by priority.
	Hidden        []string            `msgpack:"hidden"`
	HiddenPreview []string            `msgpack:"hidden_preview"`
	Pinned        []string            `msgpack:"pinned"`
	ActiveSpeaker string              `msgpack:"active_speaker,omitempty"`
	Talking       bool                `msgpack:"talking"`
	Mode          geometry.LayoutMode `msgpack:"mode"`
	Device        order.DeviceClass   `msgpack:"device"`
	Boxes         geometry.Boxes      `msgpack:"boxes"`
}
