package tapestry

// NoteValue is a standard musical note duration expressed in beats
// (quarter notes).
type NoteValue float64

// Straight, dotted and triplet note values.
const (
	Whole        NoteValue = 4.0
	Half         NoteValue = 2.0
	Quarter      NoteValue = 1.0
	Eighth       NoteValue = 0.5
	Sixteenth    NoteValue = 0.25
	ThirtySecond NoteValue = 0.125
	SixtyFourth  NoteValue = 0.0625

	DottedHalf      NoteValue = 3.0
	DottedQuarter   NoteValue = 1.5
	DottedEighth    NoteValue = 0.75
	DottedSixteenth NoteValue = 0.375

	TripletHalf      NoteValue = 4.0 / 3.0
	TripletQuarter   NoteValue = 2.0 / 3.0
	TripletEighth    NoteValue = 1.0 / 3.0
	TripletSixteenth NoteValue = 0.5 / 3.0
)

// Beats returns the value in beats.
func (n NoteValue) Beats() float64 {
	return float64(n)
}

// NoteValueFromBeats creates a custom note value from a beat count.
func NoteValueFromBeats(beats float64) NoteValue {
	return NoteValue(beats)
}
