package id

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current time in milliseconds since the Unix epoch.
type Clock interface {
	NowMs() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) NowMs() int64 { return f() }

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) NowMs() int64 { return time.Now().UnixMilli() }

// ManualClock is a Clock that only moves when told to. Safe for concurrent use.
type ManualClock struct {
	ms atomic.Int64
}

// NewManualClock returns a ManualClock reading ms.
func NewManualClock(ms int64) *ManualClock {
	c := &ManualClock{}
	c.ms.Store(ms)
	return c
}

func (c *ManualClock) NowMs() int64 { return c.ms.Load() }

// Set moves the clock to ms, backwards included.
func (c *ManualClock) Set(ms int64) { c.ms.Store(ms) }

// Advance moves the clock by d milliseconds and returns the new reading.
func (c *ManualClock) Advance(d int64) int64 { return c.ms.Add(d) }
