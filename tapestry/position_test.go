package tapestry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionSecondsRoundTrip(t *testing.T) {
	rates := []uint32{22050, 44100, 48000, 96000}
	ticks := []uint64{0, 1, 100, 22050, 44100, 1234567}

	for _, rate := range rates {
		for _, tk := range ticks {
			p := Position(tk)
			got := PositionFromSeconds(p.Seconds(rate), rate)
			diff := int64(got) - int64(p)
			assert.LessOrEqual(t, math.Abs(float64(diff)), 1.0,
				"round-trip of %d ticks at %d Hz", tk, rate)
		}
	}
}

func TestPositionArithmetic(t *testing.T) {
	p := Position(100)

	assert.Equal(t, Position(150), p.Add(Duration(50)))
	assert.Equal(t, Position(50), p.Sub(Duration(50)))

	// Subtraction saturates at zero, never wraps.
	assert.Equal(t, Zero, p.Sub(Duration(200)))
	assert.Equal(t, Zero, Zero.Sub(Duration(1)))

	assert.Equal(t, Duration(60), Position(160).Since(p))
	assert.Equal(t, Duration(0), p.Since(Position(160)))
}

func TestDurationScaling(t *testing.T) {
	d := Duration(100)

	assert.Equal(t, Duration(200), d.Scale(2.0))
	assert.Equal(t, Duration(50), d.Div(2.0))

	// Scaling rounds to the nearest tick rather than truncating.
	assert.Equal(t, Duration(33), d.Scale(1.0/3.0))
	assert.Equal(t, Duration(67), d.Scale(2.0/3.0))

	assert.Equal(t, Duration(0), d.Sub(Duration(150)))
	assert.Equal(t, Duration(250), d.Add(Duration(150)))
}

func TestDurationFromBeats(t *testing.T) {
	assert.Equal(t, Duration(22050), DurationFromBeats(1.0))
	assert.Equal(t, Duration(88200), DurationFromBeats(4.0))
	assert.Equal(t, Duration(11025), DurationFromBeats(Eighth.Beats()))
}
