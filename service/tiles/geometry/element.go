// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package geometry

import (
	"fmt"
)

const (
	placeholderWidth  = 1280
	placeholderHeight = 720
)

type LayoutMode string

const (
	Grid          LayoutMode = "grid"
	ActiveSpeaker LayoutMode = "active-speaker"
)

func (m LayoutMode) IsValid() error {
	switch m {
	case Grid, ActiveSpeaker:
		return nil
	default:
		return fmt.Errorf("invalid layout mode %q", string(m))
	}
}

// Element is an abstract rectangle request handed to the packer. Width and
// Height are nil until the corresponding video has produced a frame.
type Element struct {
	Width      *int `msgpack:"width,omitempty"`
	Height     *int `msgpack:"height,omitempty"`
	Big        bool `msgpack:"big"`
	FixedRatio bool `msgpack:"fixed_ratio"`
}

type Size struct {
	Width  *int `msgpack:"width,omitempty"`
	Height *int `msgpack:"height,omitempty"`
}

// Tile is a visible subscriber as seen by the element builder.
type Tile struct {
	ID          string
	Size        Size
	Screenshare bool
	Pinned      bool
}

// State is the slice of call state needed to build a layout pass.
type State struct {
	Publisher Size
	// Subscribers are the visible subscribers in display order.
	Subscribers []Tile
	// LocalScreenshare is set while the local participant shares its screen.
	LocalScreenshare *Size
	HasHidden        bool

	ActiveSpeakerID string
	Mode            LayoutMode
	// ScreenshareInCall and PinnedInCall look at every participant, hidden ones included.
	ScreenshareInCall bool
	PinnedInCall      bool
}

// Build returns the elements for a pass in the fixed positional order:
// publisher, subscribers, local screenshare (if any), hidden placeholder (if any).
func Build(st State) []Element {
	elements := make([]Element, 0, len(st.Subscribers)+3)
	elements = append(elements, Element{
		Width:  st.Publisher.Width,
		Height: st.Publisher.Height,
	})

	screenshare := st.ScreenshareInCall || st.LocalScreenshare != nil
	for i, tile := range st.Subscribers {
		elements = append(elements, Element{
			Width:      tile.Size.Width,
			Height:     tile.Size.Height,
			Big:        isBig(st, tile, i, screenshare),
			FixedRatio: tile.Screenshare,
		})
	}

	if st.LocalScreenshare != nil {
		elements = append(elements, Element{
			Width:      st.LocalScreenshare.Width,
			Height:     st.LocalScreenshare.Height,
			Big:        true,
			FixedRatio: true,
		})
	}

	if st.HasHidden {
		w, h := placeholderWidth, placeholderHeight
		elements = append(elements, Element{
			Width:  &w,
			Height: &h,
		})
	}

	return elements
}

func isBig(st State, tile Tile, idx int, screenshare bool) bool {
	if tile.Screenshare {
		return true
	}
	if screenshare {
		return false
	}
	if tile.Pinned {
		return true
	}
	if st.Mode != ActiveSpeaker || st.PinnedInCall {
		return false
	}
	if st.ActiveSpeakerID == "" {
		return idx == 0
	}
	return tile.ID == st.ActiveSpeakerID
}

// HasBig reports whether any element will be rendered large.
func HasBig(elements []Element) bool {
	for _, e := range elements {
		if e.Big {
			return true
		}
	}
	return false
}
