// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package tiles

import (
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/order"
)

// Participant is a remote media subscription. ID is the stream id, which
// stays the same across reconnections of the underlying transport.
type Participant struct {
	ID            string `msgpack:"id"`
	Name          string `msgpack:"name,omitempty"`
	IsScreenshare bool   `msgpack:"is_screenshare"`
	IsPinned      bool   `msgpack:"is_pinned"`
	HasAudio      bool   `msgpack:"has_audio"`
	HasVideo      bool   `msgpack:"has_video"`
	// VideoWidth and VideoHeight are nil until the first frame is decoded.
	VideoWidth  *int `msgpack:"video_width,omitempty"`
	VideoHeight *int `msgpack:"video_height,omitempty"`
}

func (p *Participant) entry() order.Entry {
	return order.Entry{
		ID:          p.ID,
		Screenshare: p.IsScreenshare,
		Pinned:      p.IsPinned,
	}
}

func (p *Participant) tile() geometry.Tile {
	return geometry.Tile{
		ID: p.ID,
		Size: geometry.Size{
			Width:  p.VideoWidth,
			Height: p.VideoHeight,
		},
		Screenshare: p.IsScreenshare,
		Pinned:      p.IsPinned,
	}
}
