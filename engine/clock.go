// Package engine drives playback: clock sources, the time-ordered event
// scheduler, and the real-time loop that turns timeline content into
// output events.
package engine

import (
	"sync"
	"time"

	"loom/tapestry"
)

// ClockKind identifies a clock source implementation.
type ClockKind int

const (
	// ClockInternal derives position from the system clock.
	ClockInternal ClockKind = iota
	// ClockMTC follows incoming MIDI timecode. No MTC receiver exists
	// yet; selecting it fails.
	ClockMTC
)

func (k ClockKind) String() string {
	switch k {
	case ClockInternal:
		return "internal"
	case ClockMTC:
		return "mtc"
	}
	return "unknown"
}

// ClockSource supplies the playback position. Implementations must be
// safe for concurrent use by the playback loop and the control context.
type ClockSource interface {
	// Now returns the current position. While stopped it returns the
	// position the clock is anchored at.
	Now() tapestry.Position

	// SampleRate returns the rate ticks are counted at.
	SampleRate() uint32

	// Running reports whether the clock is advancing.
	Running() bool

	// Start anchors the clock at from and begins advancing.
	Start(from tapestry.Position)

	// Stop freezes the clock at its current position.
	Stop()

	// Seek re-anchors the clock at pos so subsequent elapsed-time
	// samples stay consistent with the sought position.
	Seek(pos tapestry.Position)
}

// InternalClock maps wall-clock elapsed time to ticks at the reference
// sample rate.
type InternalClock struct {
	mu        sync.Mutex
	rate      uint32
	base      tapestry.Position
	startedAt time.Time
	running   bool
}

// NewInternalClock creates a stopped internal clock anchored at zero.
func NewInternalClock(rate uint32) *InternalClock {
	return &InternalClock{rate: rate}
}

// Now returns the anchored position plus wall-clock elapsed time since
// Start, rounded to the nearest tick.
func (c *InternalClock) Now() tapestry.Position {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return c.base
	}
	elapsed := time.Since(c.startedAt).Seconds()
	return c.base.Add(tapestry.DurationFromSeconds(elapsed, c.rate))
}

// SampleRate returns the reference rate.
func (c *InternalClock) SampleRate() uint32 {
	return c.rate
}

// Running reports whether the clock is advancing.
func (c *InternalClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start anchors the clock at from and begins advancing.
func (c *InternalClock) Start(from tapestry.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = from
	c.startedAt = time.Now()
	c.running = true
}

// Stop freezes the clock at its current position.
func (c *InternalClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.base = c.base.Add(tapestry.DurationFromSeconds(time.Since(c.startedAt).Seconds(), c.rate))
		c.running = false
	}
}

// Seek re-anchors the clock at pos without changing its run state.
func (c *InternalClock) Seek(pos tapestry.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = pos
	c.startedAt = time.Now()
}
