// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package speaker

import (
	"fmt"
	"time"
)

const (
	defaultActivationLevel = 0.2
	defaultSwitchMargin    = 0.1
	defaultSwitchDuration  = 500 * time.Millisecond
)

type SelectorConfig struct {
	// ActivationLevel is the smoothed level a participant needs to be elected.
	ActivationLevel float64 `toml:"activation_level"`
	// SwitchMargin is how much louder than the current speaker a challenger must be.
	SwitchMargin float64 `toml:"switch_margin"`
	// SwitchDuration is how long a challenger must hold the margin before taking over.
	SwitchDuration time.Duration `toml:"switch_duration"`
}

func (c SelectorConfig) SetDefaults() SelectorConfig {
	if c.ActivationLevel == 0 {
		c.ActivationLevel = defaultActivationLevel
	}

	if c.SwitchMargin == 0 {
		c.SwitchMargin = defaultSwitchMargin
	}

	if c.SwitchDuration == 0 {
		c.SwitchDuration = defaultSwitchDuration
	}

	return c
}

func (c SelectorConfig) IsValid() error {
	if c.ActivationLevel <= 0 || c.ActivationLevel > 1 {
		return fmt.Errorf("ActivationLevel should be in range (0, 1]")
	}

	if c.SwitchMargin < 0 || c.SwitchMargin >= 1 {
		return fmt.Errorf("SwitchMargin should be in range [0, 1)")
	}

	if c.SwitchDuration < 0 {
		return fmt.Errorf("SwitchDuration should be >= 0")
	}

	return nil
}

// Sample is a smoothed audio level update for a single participant.
type Sample struct {
	ParticipantID string
	MovingAverage float64
}

type Speaker struct {
	ID            string  `msgpack:"id"`
	MovingAverage float64 `msgpack:"moving_avg"`
}

// Change describes a transition of the elected speaker. Either side may be nil.
type Change struct {
	Previous *Speaker
	New      *Speaker
}

type challenger struct {
	id    string
	since time.Time
}

// Selector elects a single active speaker out of the tracked participants.
// It is not safe for concurrent use.
type Selector struct {
	cfg SelectorConfig

	levels    map[string]float64
	current   string
	candidate *challenger
}

func NewSelector(cfg SelectorConfig) (*Selector, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}

	return &Selector{
		cfg:    cfg,
		levels: make(map[string]float64),
	}, nil
}

// Track starts accepting samples for the given participant.
func (s *Selector) Track(id string) {
	if s.IsTracked(id) {
		return
	}
	s.levels[id] = 0
}

func (s *Selector) IsTracked(id string) bool {
	_, ok := s.levels[id]
	return ok
}

// Current returns the id of the active speaker, empty if none.
func (s *Selector) Current() string {
	return s.current
}

func (s *Selector) Level(id string) float64 {
	return s.levels[id]
}

// Push records a sample and returns a non-nil Change if the active speaker
// changed as a result. Samples for untracked participants are ignored.
func (s *Selector) Push(sample Sample, at time.Time) *Change {
	id := sample.ParticipantID
	if !s.IsTracked(id) {
		return nil
	}
	s.levels[id] = sample.MovingAverage

	if s.current == "" {
		if sample.MovingAverage >= s.cfg.ActivationLevel {
			return s.elect(id)
		}
		return nil
	}

	if id == s.current {
		if s.candidate != nil && !s.outranks(s.candidate.id) {
			s.candidate = nil
		}
		return nil
	}

	if !s.outranks(id) {
		if s.candidate != nil && s.candidate.id == id {
			s.candidate = nil
		}
		return nil
	}

	if s.candidate == nil || s.candidate.id != id {
		if s.candidate != nil && s.levels[s.candidate.id] > sample.MovingAverage && s.outranks(s.candidate.id) {
			// A louder challenger is already building up its streak.
			return nil
		}
		s.candidate = &challenger{id: id, since: at}
	}

	if at.Sub(s.candidate.since) >= s.cfg.SwitchDuration {
		return s.elect(id)
	}

	return nil
}

// Remove stops tracking a participant. If it was the active speaker, the
// loudest remaining qualifying participant takes over (or nobody).
func (s *Selector) Remove(id string) *Change {
	if !s.IsTracked(id) {
		return nil
	}

	prev := s.speaker(s.current)
	delete(s.levels, id)
	if s.candidate != nil && s.candidate.id == id {
		s.candidate = nil
	}

	if id != s.current {
		return nil
	}

	s.current = ""
	s.candidate = nil

	var next string
	var nextLevel float64
	for pid, level := range s.levels {
		if level < s.cfg.ActivationLevel {
			continue
		}
		if next == "" || level > nextLevel || (level == nextLevel && pid < next) {
			next = pid
			nextLevel = level
		}
	}
	s.current = next

	return &Change{
		Previous: prev,
		New:      s.speaker(next),
	}
}

func (s *Selector) outranks(id string) bool {
	level := s.levels[id]
	return level >= s.cfg.ActivationLevel && level > s.levels[s.current]+s.cfg.SwitchMargin
}

func (s *Selector) elect(id string) *Change {
	change := &Change{
		Previous: s.speaker(s.current),
	}
	s.current = id
	s.candidate = nil
	change.New = s.speaker(id)
	return change
}

func (s *Selector) speaker(id string) *Speaker {
	if id == "" {
		return nil
	}
	return &Speaker{
		ID:            id,
		MovingAverage: s.levels[id],
	}
}
