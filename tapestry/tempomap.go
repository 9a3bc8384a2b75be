package tapestry

import (
	"math"
	"sort"
)

// DefaultSampleRate is the reference rate new tempo maps use unless told
// otherwise.
const DefaultSampleRate = 44100

type tempoChange struct {
	pos   Position
	tempo Tempo
}

type signatureChange struct {
	pos Position
	sig TimeSignature
}

// TempoMap maps between time domains: ticks, seconds, playback samples,
// beats and bars. It holds position-ordered tempo and time-signature change
// lists that always contain an entry at tick zero (120 BPM, 4/4), so
// lookups cannot fail.
//
// The reference sample rate fixes what one tick means. The playback sample
// rate is independent and only affects tick<->sample conversion.
type TempoMap struct {
	referenceRate uint32
	playbackRate  uint32
	tempoChanges  []tempoChange
	sigChanges    []signatureChange
}

// NewTempoMap creates a tempo map with the default 120 BPM, 4/4 entries at
// tick zero.
func NewTempoMap(referenceRate, playbackRate uint32) *TempoMap {
	return &TempoMap{
		referenceRate: referenceRate,
		playbackRate:  playbackRate,
		tempoChanges:  []tempoChange{{pos: Zero, tempo: NewTempo(120.0)}},
		sigChanges:    []signatureChange{{pos: Zero, sig: NewTimeSignature(4, 4)}},
	}
}

// ReferenceRate returns the reference sample rate.
func (m *TempoMap) ReferenceRate() uint32 {
	return m.referenceRate
}

// PlaybackRate returns the playback sample rate.
func (m *TempoMap) PlaybackRate() uint32 {
	return m.playbackRate
}

// SetPlaybackRate changes the playback sample rate. Tick positions are
// unaffected.
func (m *TempoMap) SetPlaybackRate(rate uint32) {
	m.playbackRate = rate
}

// SetTempo inserts a tempo change at the given position, replacing any
// change already there.
func (m *TempoMap) SetTempo(pos Position, tempo Tempo) {
	i := sort.Search(len(m.tempoChanges), func(i int) bool {
		return m.tempoChanges[i].pos >= pos
	})
	if i < len(m.tempoChanges) && m.tempoChanges[i].pos == pos {
		m.tempoChanges[i].tempo = tempo
		return
	}
	m.tempoChanges = append(m.tempoChanges, tempoChange{})
	copy(m.tempoChanges[i+1:], m.tempoChanges[i:])
	m.tempoChanges[i] = tempoChange{pos: pos, tempo: tempo}
}

// SetTimeSignature inserts a time-signature change at the given position,
// replacing any change already there.
func (m *TempoMap) SetTimeSignature(pos Position, sig TimeSignature) {
	i := sort.Search(len(m.sigChanges), func(i int) bool {
		return m.sigChanges[i].pos >= pos
	})
	if i < len(m.sigChanges) && m.sigChanges[i].pos == pos {
		m.sigChanges[i].sig = sig
		return
	}
	m.sigChanges = append(m.sigChanges, signatureChange{})
	copy(m.sigChanges[i+1:], m.sigChanges[i:])
	m.sigChanges[i] = signatureChange{pos: pos, sig: sig}
}

// TempoAt returns the tempo effective at pos: the latest change at or
// before it. The zero-position default guarantees a hit; anything else is
// an invariant violation and panics.
func (m *TempoMap) TempoAt(pos Position) Tempo {
	i := sort.Search(len(m.tempoChanges), func(i int) bool {
		return m.tempoChanges[i].pos > pos
	})
	if i == 0 {
		panic("tapestry: no tempo change at or before position")
	}
	return m.tempoChanges[i-1].tempo
}

// TimeSignatureAt returns the time signature effective at pos.
func (m *TempoMap) TimeSignatureAt(pos Position) TimeSignature {
	i := sort.Search(len(m.sigChanges), func(i int) bool {
		return m.sigChanges[i].pos > pos
	})
	if i == 0 {
		panic("tapestry: no time signature change at or before position")
	}
	return m.sigChanges[i-1].sig
}

// TicksToPlaybackSamples converts a tick position to playback samples,
// rounded to the nearest sample.
func (m *TempoMap) TicksToPlaybackSamples(pos Position) uint64 {
	return uint64(math.Round(float64(pos) * float64(m.playbackRate) / float64(m.referenceRate)))
}

// PlaybackSamplesToTicks converts playback samples to a tick position,
// rounded to the nearest tick.
func (m *TempoMap) PlaybackSamplesToTicks(samples uint64) Position {
	return Position(math.Round(float64(samples) * float64(m.referenceRate) / float64(m.playbackRate)))
}

// PositionToBeats converts a position to a beat count by integrating
// piecewise across every tempo-change boundary up to pos.
func (m *TempoMap) PositionToBeats(pos Position) float64 {
	beats := 0.0
	last := Zero
	tempo := m.tempoChanges[0].tempo

	for _, c := range m.tempoChanges[1:] {
		if c.pos > pos {
			break
		}
		beats += float64(c.pos-last) / float64(m.referenceRate) / tempo.BeatDuration()
		last = c.pos
		tempo = c.tempo
	}

	if pos > last {
		beats += float64(pos-last) / float64(m.referenceRate) / tempo.BeatDuration()
	}
	return beats
}

// BeatsToPosition converts a beat count to a position: walks the tempo
// segments consuming the beat budget until the target falls inside the
// current segment, then converts the residual beats at that segment's
// tempo.
func (m *TempoMap) BeatsToPosition(beats float64) Position {
	remaining := beats
	cur := Zero
	tempo := m.tempoChanges[0].tempo

	for _, c := range m.tempoChanges[1:] {
		segBeats := float64(c.pos-cur) / float64(m.referenceRate) / tempo.BeatDuration()
		if remaining <= segBeats {
			break
		}
		remaining -= segBeats
		cur = c.pos
		tempo = c.tempo
	}

	extra := math.Round(remaining * tempo.BeatDuration() * float64(m.referenceRate))
	return cur + Position(extra)
}

// PositionToBarsBeats converts a position to a whole-bar count and the beat
// offset within the current bar, honoring every time-signature segment up
// to pos.
func (m *TempoMap) PositionToBarsBeats(pos Position) (uint32, float64) {
	remaining := m.PositionToBeats(pos)
	bars := uint32(0)
	lastPos := Zero
	sig := m.sigChanges[0].sig

	for _, c := range m.sigChanges[1:] {
		if c.pos > pos {
			break
		}
		segBeats := m.PositionToBeats(c.pos) - m.PositionToBeats(lastPos)
		whole := math.Floor(segBeats / sig.BeatsPerBar())
		bars += uint32(whole)
		remaining -= whole * sig.BeatsPerBar()
		lastPos = c.pos
		sig = c.sig
	}

	finalBars := math.Floor(remaining / sig.BeatsPerBar())
	return bars + uint32(finalBars), remaining - finalBars*sig.BeatsPerBar()
}
