// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package tiles

import (
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/geometry"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/speaker"
)

// Observer is notified synchronously from within Call.Handle.
type Observer interface {
	ActiveSpeakerChanged(change speaker.Change)
	TalkingChanged(participantID string, talking bool)
}

type Metrics interface {
	IncLayoutPasses()
	IncActiveSpeakerChanges()
	IncPinRejections()
	IncInvariantViolations()
	IncStaleEvents(eventType string)
}

type nopObserver struct{}

func (nopObserver) ActiveSpeakerChanged(_ speaker.Change) {}
func (nopObserver) TalkingChanged(_ string, _ bool)       {}

type nopMetrics struct{}

func (nopMetrics) IncLayoutPasses()         {}
func (nopMetrics) IncActiveSpeakerChanges() {}
func (nopMetrics) IncPinRejections()        {}
func (nopMetrics) IncInvariantViolations()  {}
func (nopMetrics) IncStaleEvents(_ string)  {}

type CallOption func(c *Call) error

func WithPacker(p geometry.Packer) CallOption {
	return func(c *Call) error {
		c.packer = p
		return nil
	}
}

func WithObserver(o Observer) CallOption {
	return func(c *Call) error {
		c.observer = o
		return nil
	}
}

func WithMetrics(m Metrics) CallOption {
	return func(c *Call) error {
		c.metrics = m
		return nil
	}
}

// WithNow sets the clock used for events that carry no timestamp.
func WithNow(now func() time.Time) CallOption {
	return func(c *Call) error {
		c.now = now
		return nil
	}
}
