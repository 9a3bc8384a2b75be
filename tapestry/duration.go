package tapestry

import "math"

// defaultTicksPerBeat is the tick span of one beat at 120 BPM and a 44.1kHz
// reference rate (0.5s). Used only for tempo-independent defaults like new
// container lengths; real beat math goes through the TempoMap.
const defaultTicksPerBeat = 22050

// Duration is an elapsed span of time in ticks at the reference sample rate.
type Duration uint64

// DurationFromSeconds converts seconds to a Duration at the reference
// sample rate, rounded to the nearest tick.
func DurationFromSeconds(seconds float64, referenceRate uint32) Duration {
	return Duration(math.Round(seconds * float64(referenceRate)))
}

// DurationFromBeats converts beats to a Duration at the fixed default
// ticks-per-beat rate.
func DurationFromBeats(beats float64) Duration {
	return Duration(math.Round(beats * defaultTicksPerBeat))
}

// Ticks returns the raw tick count.
func (d Duration) Ticks() uint64 {
	return uint64(d)
}

// Seconds converts this duration to seconds at the reference sample rate.
func (d Duration) Seconds(referenceRate uint32) float64 {
	return float64(d) / float64(referenceRate)
}

// Add returns the sum of two durations.
func (d Duration) Add(other Duration) Duration {
	return d + other
}

// Sub returns d shortened by other, saturating at zero.
func (d Duration) Sub(other Duration) Duration {
	if other > d {
		return 0
	}
	return d - other
}

// Scale stretches the duration by a scalar, rounded to the nearest tick.
// Used when time-scaling container content.
func (d Duration) Scale(factor float64) Duration {
	return Duration(math.Round(float64(d) * factor))
}

// Div shrinks the duration by a scalar, rounded to the nearest tick.
func (d Duration) Div(divisor float64) Duration {
	return Duration(math.Round(float64(d) / divisor))
}
