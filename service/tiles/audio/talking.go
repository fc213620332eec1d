// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package audio

import (
	"fmt"
	"time"
)

const (
	defaultSpeakingVolume  = 0.1
	defaultSpeakingTime    = 100 * time.Millisecond
	defaultNotSpeakingTime = 800 * time.Millisecond
)

// TalkingCB is called with talking=true on onset and periodic confirmation,
// and with talking=false once enough silence has elapsed.
type TalkingCB func(talking bool)

type TalkingConfig struct {
	// SpeakingVolume is the raw (unsmoothed) level above which a sample counts as speech.
	SpeakingVolume float64 `toml:"speaking_volume"`
	// SpeakingTime is the interval after which ongoing speech is re-confirmed.
	SpeakingTime time.Duration `toml:"speaking_time"`
	// NotSpeakingTime is the silence required before talking turns off.
	NotSpeakingTime time.Duration `toml:"not_speaking_time"`
}

func (c TalkingConfig) SetDefaults() TalkingConfig {
	if c.SpeakingVolume == 0 {
		c.SpeakingVolume = defaultSpeakingVolume
	}

	if c.SpeakingTime == 0 {
		c.SpeakingTime = defaultSpeakingTime
	}

	if c.NotSpeakingTime == 0 {
		c.NotSpeakingTime = defaultNotSpeakingTime
	}

	return c
}

func (c TalkingConfig) IsValid() error {
	if c.SpeakingVolume <= 0 || c.SpeakingVolume >= 1 {
		return fmt.Errorf("SpeakingVolume should be in range (0, 1)")
	}

	if c.SpeakingTime <= 0 {
		return fmt.Errorf("SpeakingTime should be > 0")
	}

	if c.NotSpeakingTime <= 0 {
		return fmt.Errorf("NotSpeakingTime should be > 0")
	}

	return nil
}

// TalkingMonitor tracks whether a single participant is currently talking.
type TalkingMonitor struct {
	cfg TalkingConfig

	talking       bool
	lastTimestamp time.Time
	cb            TalkingCB
}

func NewTalkingMonitor(cfg TalkingConfig, cb TalkingCB) (*TalkingMonitor, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}

	if cb == nil {
		return nil, fmt.Errorf("talking event callback is required")
	}

	return &TalkingMonitor{
		cfg: cfg,
		cb:  cb,
	}, nil
}

func (m *TalkingMonitor) Push(sample float64, at time.Time) {
	if sample > m.cfg.SpeakingVolume {
		if !m.talking {
			m.talking = true
			m.lastTimestamp = at
			m.cb(true)
		} else if at.Sub(m.lastTimestamp) > m.cfg.SpeakingTime {
			m.lastTimestamp = at
			m.cb(true)
		}
		return
	}

	if m.talking && at.Sub(m.lastTimestamp) > m.cfg.NotSpeakingTime {
		m.talking = false
		m.cb(false)
	}
}

func (m *TalkingMonitor) Talking() bool {
	return m.talking
}

// Reset discards the talking state without invoking the callback.
func (m *TalkingMonitor) Reset() {
	m.talking = false
	m.lastTimestamp = time.Time{}
}
