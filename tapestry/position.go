// Package tapestry holds the time representation everything else operates
// in: tick-based positions and durations at a fixed reference sample rate,
// and the tempo map that converts between ticks, seconds, samples, beats
// and bars.
package tapestry

import "math"

// Position is a point on the timeline, counted in ticks at the reference
// sample rate. The zero value is tick zero. Positions order and compare by
// tick count and are usable as map keys.
type Position uint64

// Zero is the position at tick zero.
const Zero Position = 0

// PositionFromSeconds converts wall-clock seconds to a Position using the
// reference sample rate, rounded to the nearest tick.
func PositionFromSeconds(seconds float64, referenceRate uint32) Position {
	return Position(math.Round(seconds * float64(referenceRate)))
}

// Ticks returns the raw tick count.
func (p Position) Ticks() uint64 {
	return uint64(p)
}

// Seconds converts this position to seconds at the reference sample rate.
func (p Position) Seconds(referenceRate uint32) float64 {
	return float64(p) / float64(referenceRate)
}

// Add returns the position advanced by d.
func (p Position) Add(d Duration) Position {
	return p + Position(d)
}

// Sub returns the position moved back by d, saturating at zero.
func (p Position) Sub(d Duration) Position {
	if Position(d) > p {
		return 0
	}
	return p - Position(d)
}

// Since returns the span from earlier to p, saturating at zero when
// earlier is ahead of p.
func (p Position) Since(earlier Position) Duration {
	if earlier > p {
		return 0
	}
	return Duration(p - earlier)
}
