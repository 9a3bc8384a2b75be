package tapestry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempoMapDefaults(t *testing.T) {
	m := NewTempoMap(44100, 44100)

	tempo := m.TempoAt(Zero)
	assert.Equal(t, 120.0, tempo.BPM)

	sig := m.TimeSignatureAt(Position(1_000_000))
	assert.Equal(t, uint8(4), sig.Numerator)
	assert.Equal(t, uint8(4), sig.Denominator)
}

func TestTempoMapLookupPicksLatestChange(t *testing.T) {
	m := NewTempoMap(44100, 44100)
	m.SetTempo(Position(44100), NewTempo(140.0))
	m.SetTempo(Position(88200), NewTempo(90.0))

	assert.Equal(t, 120.0, m.TempoAt(Position(44099)).BPM)
	assert.Equal(t, 140.0, m.TempoAt(Position(44100)).BPM, "change at pos is effective at pos")
	assert.Equal(t, 140.0, m.TempoAt(Position(88199)).BPM)
	assert.Equal(t, 90.0, m.TempoAt(Position(500000)).BPM)

	// Replacing a change at the same position keeps exactly one entry there.
	m.SetTempo(Position(44100), NewTempo(150.0))
	assert.Equal(t, 150.0, m.TempoAt(Position(44100)).BPM)
}

func TestPositionToBeatsConstantTempo(t *testing.T) {
	m := NewTempoMap(44100, 44100)

	// 120 BPM: one beat is 0.5s = 22050 ticks.
	assert.InDelta(t, 0.0, m.PositionToBeats(Zero), 1e-9)
	assert.InDelta(t, 1.0, m.PositionToBeats(Position(22050)), 1e-9)
	assert.InDelta(t, 4.0, m.PositionToBeats(Position(88200)), 1e-9)
}

func TestPositionToBeatsVariableTempo(t *testing.T) {
	m := NewTempoMap(44100, 44100)
	// Double the tempo after two beats.
	m.SetTempo(Position(44100), NewTempo(240.0))

	// First segment: 44100 ticks at 120 BPM = 2 beats.
	assert.InDelta(t, 2.0, m.PositionToBeats(Position(44100)), 1e-9)

	// A fixed tick span counts twice as many beats after the doubling.
	span := Position(22050)
	before := m.PositionToBeats(Position(22050)+span) - m.PositionToBeats(Position(22050))
	after := m.PositionToBeats(Position(44100)+span) - m.PositionToBeats(Position(44100))
	assert.InDelta(t, 2.0*before, after, 1e-9)
}

func TestBeatsRoundTrip(t *testing.T) {
	m := NewTempoMap(44100, 44100)
	m.SetTempo(Position(44100), NewTempo(90.0))
	m.SetTempo(Position(132300), NewTempo(180.0))
	m.SetTempo(Position(200000), NewTempo(61.5))

	positions := []Position{0, 1000, 22050, 44100, 44101, 100000, 132300, 150000, 200000, 300000}

	prev := -1.0
	for _, p := range positions {
		beats := m.PositionToBeats(p)
		require.Greater(t, beats, prev, "PositionToBeats must be monotonic")
		prev = beats

		back := m.BeatsToPosition(beats)
		diff := int64(back) - int64(p)
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, int64(1), "round-trip of position %d", p)
	}
}

func TestPlaybackSampleConversion(t *testing.T) {
	m := NewTempoMap(44100, 48000)

	// One second of ticks maps to one second of playback samples.
	assert.Equal(t, uint64(48000), m.TicksToPlaybackSamples(Position(44100)))
	assert.Equal(t, Position(44100), m.PlaybackSamplesToTicks(48000))

	// Rounded, not truncated.
	assert.Equal(t, uint64(1), m.TicksToPlaybackSamples(Position(1)))

	m.SetPlaybackRate(44100)
	assert.Equal(t, uint64(500), m.TicksToPlaybackSamples(Position(500)))
}

func TestPositionToBarsBeats(t *testing.T) {
	m := NewTempoMap(44100, 44100)

	// 120 BPM 4/4: a bar is 4 beats = 88200 ticks.
	bars, beat := m.PositionToBarsBeats(Position(88200))
	assert.Equal(t, uint32(1), bars)
	assert.InDelta(t, 0.0, beat, 1e-9)

	bars, beat = m.PositionToBarsBeats(Position(88200 + 22050))
	assert.Equal(t, uint32(1), bars)
	assert.InDelta(t, 1.0, beat, 1e-9)

	// Switch to 3/4 after the first bar.
	m.SetTimeSignature(Position(88200), NewTimeSignature(3, 4))
	bars, beat = m.PositionToBarsBeats(Position(88200 + 3*22050))
	assert.Equal(t, uint32(2), bars)
	assert.InDelta(t, 0.0, beat, 1e-9)
}
