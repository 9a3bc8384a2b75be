// Package output carries playback events to device endpoints: a flat event
// type, the endpoint capability contract, a concrete MIDI endpoint built on
// gomidi, and the registry that dispatches events to matching endpoints.
package output

import "loom/model"

// Kind tags what an Event is.
type Kind int

const (
	NoteOn Kind = iota
	NoteOff
	ControlChange
	ProgramChange
	PitchBend
	Aftertouch
	PolyAftertouch
	AudioBuffer
	SynthParam
	SyncPulse
	EndOfTrack
)

// Event is a single output event. Only the fields relevant to its Kind are
// populated. A nil Target means broadcast to every endpoint whose type
// accepts the event.
type Event struct {
	Kind Kind

	// MIDI fields
	Channel    uint8
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
	Program    uint8
	Pressure   uint8
	Bend       int16 // -8192 to 8191

	// Audio fields
	Samples  []float32
	Channels uint8
	Frames   int

	// Synthesizer parameter fields
	ParamID    uint32
	ParamValue float32

	Target *model.EndpointID
}

// NewNoteOn creates a MIDI note-on event.
func NewNoteOn(channel, note, velocity uint8) Event {
	return Event{Kind: NoteOn, Channel: channel, Note: note, Velocity: velocity}
}

// NewNoteOff creates a MIDI note-off event.
func NewNoteOff(channel, note uint8) Event {
	return Event{Kind: NoteOff, Channel: channel, Note: note}
}

// NewControlChange creates a MIDI control-change event.
func NewControlChange(channel, controller, value uint8) Event {
	return Event{Kind: ControlChange, Channel: channel, Controller: controller, Value: value}
}

// NewProgramChange creates a MIDI program-change event.
func NewProgramChange(channel, program uint8) Event {
	return Event{Kind: ProgramChange, Channel: channel, Program: program}
}

// NewPitchBend creates a MIDI pitch-bend event. value is the signed bend,
// -8192 to 8191, 0 = center.
func NewPitchBend(channel uint8, value int16) Event {
	return Event{Kind: PitchBend, Channel: channel, Bend: value}
}

// NewAftertouch creates a MIDI channel-aftertouch event.
func NewAftertouch(channel, pressure uint8) Event {
	return Event{Kind: Aftertouch, Channel: channel, Pressure: pressure}
}

// NewPolyAftertouch creates a MIDI polyphonic-aftertouch event.
func NewPolyAftertouch(channel, note, pressure uint8) Event {
	return Event{Kind: PolyAftertouch, Channel: channel, Note: note, Pressure: pressure}
}

// NewAudioBuffer creates an audio buffer event.
func NewAudioBuffer(samples []float32, channels uint8, frames int) Event {
	return Event{Kind: AudioBuffer, Samples: samples, Channels: channels, Frames: frames}
}

// NewSynthParam creates a synthesizer parameter event.
func NewSynthParam(paramID uint32, value float32) Event {
	return Event{Kind: SynthParam, ParamID: paramID, ParamValue: value}
}

// NewSyncPulse creates a clock sync pulse event.
func NewSyncPulse() Event {
	return Event{Kind: SyncPulse}
}

// NewEndOfTrack creates an end-of-track event.
func NewEndOfTrack() Event {
	return Event{Kind: EndOfTrack}
}

// WithTarget directs the event at one specific endpoint instead of
// broadcasting.
func (e Event) WithTarget(id model.EndpointID) Event {
	e.Target = &id
	return e
}

// IsMidi reports whether the event is a MIDI channel-voice event.
func (e Event) IsMidi() bool {
	switch e.Kind {
	case NoteOn, NoteOff, ControlChange, ProgramChange, PitchBend, Aftertouch, PolyAftertouch:
		return true
	}
	return false
}

// IsAudio reports whether the event carries an audio buffer.
func (e Event) IsAudio() bool {
	return e.Kind == AudioBuffer
}
