// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package audio

import (
	"math"
)

const (
	decayWeight  = 0.7
	sampleWeight = 0.3
	// Maps roughly -30..0 dB onto [0, 1].
	logScaleDivisor = 1.5
)

// Smoother turns raw audio level samples into a moving average that rises
// instantly and decays slowly, plus a log-scaled level suitable for meters.
// A Smoother belongs to a single participant and is not safe for concurrent use.
type Smoother struct {
	movingAvg float64
	logLevel  float64
}

func NewSmoother() *Smoother {
	return &Smoother{}
}

// Push feeds a raw sample in [0, 1] and returns the updated log-scaled level.
func (s *Smoother) Push(sample float64) float64 {
	if s.movingAvg == 0 || sample >= s.movingAvg {
		s.movingAvg = sample
	} else {
		s.movingAvg = decayWeight*s.movingAvg + sampleWeight*sample
	}
	s.logLevel = LogScale(s.movingAvg)
	return s.logLevel
}

func (s *Smoother) MovingAverage() float64 {
	return s.movingAvg
}

func (s *Smoother) LogLevel() float64 {
	return s.logLevel
}

func (s *Smoother) Reset() {
	s.movingAvg = 0
	s.logLevel = 0
}

// LogScale converts a linear level into the perceptual [0, 1] range.
func LogScale(level float64) float64 {
	if level <= 0 {
		return 0
	}
	return clamp(math.Log10(level)/logScaleDivisor+1, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
