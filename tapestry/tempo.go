package tapestry

// Tempo is a musical tempo in beats per minute.
type Tempo struct {
	BPM float64
}

// NewTempo creates a tempo from a BPM value.
func NewTempo(bpm float64) Tempo {
	return Tempo{BPM: bpm}
}

// BeatDuration returns the length of one beat in seconds.
func (t Tempo) BeatDuration() float64 {
	return 60.0 / t.BPM
}

// TimeSignature is a musical time signature.
type TimeSignature struct {
	Numerator   uint8 // beats per bar
	Denominator uint8 // note value that gets one beat
}

// NewTimeSignature creates a time signature.
func NewTimeSignature(numerator, denominator uint8) TimeSignature {
	return TimeSignature{Numerator: numerator, Denominator: denominator}
}

// BeatsPerBar returns the number of beats in one bar.
func (s TimeSignature) BeatsPerBar() float64 {
	return float64(s.Numerator)
}
