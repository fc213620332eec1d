// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmootherPush(t *testing.T) {
	t.Run("instant rise", func(t *testing.T) {
		s := NewSmoother()
		s.Push(0.2)
		require.Equal(t, 0.2, s.MovingAverage())

		s.Push(0.5)
		require.Equal(t, 0.5, s.MovingAverage())

		s.Push(0.5)
		require.Equal(t, 0.5, s.MovingAverage())
	})

	t.Run("slow decay", func(t *testing.T) {
		s := NewSmoother()
		s.Push(1)
		s.Push(0)
		require.InDelta(t, 0.7, s.MovingAverage(), 1e-9)

		s.Push(0.1)
		require.InDelta(t, 0.7*0.7+0.3*0.1, s.MovingAverage(), 1e-9)
	})

	t.Run("zero average takes sample", func(t *testing.T) {
		s := NewSmoother()
		s.Push(0)
		require.Zero(t, s.MovingAverage())
		s.Push(0.05)
		require.Equal(t, 0.05, s.MovingAverage())
	})

	t.Run("log level", func(t *testing.T) {
		s := NewSmoother()
		require.Equal(t, 1.0, s.Push(1))
		require.Equal(t, 1.0, s.LogLevel())
		s.Reset()
		require.Zero(t, s.MovingAverage())
		require.Zero(t, s.LogLevel())
		require.InDelta(t, 1-1/1.5, s.Push(0.1), 1e-9)
	})
}

func TestLogScale(t *testing.T) {
	require.Zero(t, LogScale(0))
	require.Zero(t, LogScale(-1))
	require.Zero(t, LogScale(0.001))
	require.Zero(t, LogScale(0.0316))
	require.Equal(t, 1.0, LogScale(1))
	require.Equal(t, 1.0, LogScale(2))
	require.InDelta(t, 1-1/1.5, LogScale(0.1), 1e-9)
	require.InDelta(t, 1-2/1.5, LogScale(0.01), 1e-9)
}
