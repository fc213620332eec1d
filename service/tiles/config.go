// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package tiles

import (
	"fmt"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/audio"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/speaker"
)

const (
	defaultMaxPinCountDesktop = 3
	maxPinCountMobile         = 1
)

type Config struct {
	// MaxPinCountDesktop caps the number of pinned participants on desktop
	// layouts. Mobile layouts always allow a single pin.
	MaxPinCountDesktop int `toml:"max_pin_count_desktop"`
	// DefaultLayoutMode is the layout mode a new call starts with.
	DefaultLayoutMode geometry.LayoutMode `toml:"default_layout_mode"`
	// StrictInvariants makes the engine panic on display order invariant
	// violations instead of repairing them. Meant for development builds.
	StrictInvariants bool                   `toml:"strict_invariants"`
	Speaker          speaker.SelectorConfig `toml:"speaker"`
	Talking          audio.TalkingConfig    `toml:"talking"`
}

func (c Config) SetDefaults() Config {
	if c.MaxPinCountDesktop == 0 {
		c.MaxPinCountDesktop = defaultMaxPinCountDesktop
	}

	if c.DefaultLayoutMode == "" {
		c.DefaultLayoutMode = geometry.Grid
	}

	c.Speaker = c.Speaker.SetDefaults()
	c.Talking = c.Talking.SetDefaults()

	return c
}

func (c Config) IsValid() error {
	if c.MaxPinCountDesktop < 1 {
		return fmt.Errorf("invalid MaxPinCountDesktop value: should be greater than zero")
	}

	if err := c.DefaultLayoutMode.IsValid(); err != nil {
		return fmt.Errorf("invalid DefaultLayoutMode value: %w", err)
	}

	if err := c.Speaker.IsValid(); err != nil {
		return fmt.Errorf("invalid Speaker config: %w", err)
	}

	if err := c.Talking.IsValid(); err != nil {
		return fmt.Errorf("invalid Talking config: %w", err)
	}

	return nil
}
