package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/model"
)

func TestMidiBytes(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  []byte
	}{
		{"note on", NewNoteOn(0, 60, 100), []byte{0x90, 60, 100}},
		{"note on channel 5", NewNoteOn(5, 64, 127), []byte{0x95, 64, 127}},
		{"note off", NewNoteOff(0, 60), []byte{0x80, 60, 0}},
		{"note off channel 15", NewNoteOff(15, 72), []byte{0x8F, 72, 0}},
		{"control change", NewControlChange(2, 7, 127), []byte{0xB2, 7, 127}},
		{"program change", NewProgramChange(3, 12), []byte{0xC3, 12}},
		{"pitch bend center", NewPitchBend(0, 0), []byte{0xE0, 0x00, 0x40}},
		{"pitch bend max", NewPitchBend(0, 8191), []byte{0xE0, 0x7F, 0x7F}},
		{"pitch bend min", NewPitchBend(0, -8192), []byte{0xE0, 0x00, 0x00}},
		{"aftertouch", NewAftertouch(1, 80), []byte{0xD1, 80}},
		{"poly aftertouch", NewPolyAftertouch(4, 60, 90), []byte{0xA4, 60, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MidiBytes(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMidiBytesRejectsNonMidi(t *testing.T) {
	for _, ev := range []Event{
		NewAudioBuffer(nil, 2, 0),
		NewSynthParam(1, 0.5),
		NewSyncPulse(),
		NewEndOfTrack(),
	} {
		_, err := MidiBytes(ev)
		assert.Error(t, err)
	}
}

func TestMidiEndpointSendWhileDisconnected(t *testing.T) {
	ep := NewMidiEndpoint(model.NewEndpointID(), "synth", 0, "Test Port", nil)

	assert.False(t, ep.IsConnected())
	err := ep.SendEvent(NewNoteOn(0, 60, 100))
	require.Error(t, err, "sending to a disconnected endpoint fails explicitly")
	assert.Contains(t, err.Error(), "not connected")
}

func TestEventCategories(t *testing.T) {
	assert.True(t, NewNoteOn(0, 60, 100).IsMidi())
	assert.True(t, NewPitchBend(0, 0).IsMidi())
	assert.False(t, NewNoteOn(0, 60, 100).IsAudio())
	assert.True(t, NewAudioBuffer(nil, 2, 128).IsAudio())
	assert.False(t, NewSyncPulse().IsMidi())
}
