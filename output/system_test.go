package output

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/model"
)

// stubEndpoint records sends and fakes a connection state.
type stubEndpoint struct {
	mu        sync.Mutex
	name      string
	epType    model.EndpointType
	connected bool
	received  []Event
}

func (s *stubEndpoint) Name() string             { return s.name }
func (s *stubEndpoint) Type() model.EndpointType { return s.epType }

func (s *stubEndpoint) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *stubEndpoint) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

func (s *stubEndpoint) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
}

func (s *stubEndpoint) SendEvent(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return errors.New("not connected")
	}
	s.received = append(s.received, ev)
	return nil
}

func (s *stubEndpoint) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func TestAddEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.EndpointConfig
	}{
		{
			"malformed device id",
			model.NewMidiEndpointConfig("synth", "no-port-index-here"),
		},
		{
			"non-numeric port index",
			model.NewMidiEndpointConfig("synth", "abc:Some Port"),
		},
		{
			"wrong parameter variant",
			model.EndpointConfig{
				ID:         model.NewEndpointID(),
				Name:       "synth",
				Type:       model.EndpointMidi,
				DeviceID:   "0:Some Port",
				Parameters: model.AudioParameters{Volume: 1.0},
			},
		},
		{
			"unsupported endpoint type",
			model.NewPluginEndpointConfig("verb", "/usr/lib/vst/verb.so"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem()
			err := sys.AddEndpoint(tt.cfg)
			require.Error(t, err)
			assert.False(t, sys.IsConnected(tt.cfg.ID), "nothing inserted on failure")
			assert.False(t, sys.Remove(tt.cfg.ID))
		})
	}
}

func TestAddEndpointMidi(t *testing.T) {
	sys := NewSystem()
	cfg := model.NewMidiEndpointConfig("synth", "2:USB MIDI Interface")
	require.NoError(t, sys.AddEndpoint(cfg))
	assert.True(t, sys.Remove(cfg.ID))
}

func TestSendEventBroadcastFiltersByType(t *testing.T) {
	sys := NewSystem()
	midiEp := &stubEndpoint{name: "midi", epType: model.EndpointMidi, connected: true}
	audioEp := &stubEndpoint{name: "audio", epType: model.EndpointAudio, connected: true}
	sys.Register(model.NewEndpointID(), midiEp)
	sys.Register(model.NewEndpointID(), audioEp)

	results := sys.SendEvent(NewNoteOn(0, 60, 100))
	require.Len(t, results, 1, "MIDI events go to MIDI endpoints only")
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 1, midiEp.count())
	assert.Equal(t, 0, audioEp.count())

	results = sys.SendEvent(NewAudioBuffer(make([]float32, 256), 2, 128))
	require.Len(t, results, 1, "audio buffers go to audio endpoints only")
	assert.Equal(t, 1, audioEp.count())

	// Sync pulses match no endpoint category.
	assert.Empty(t, sys.SendEvent(NewSyncPulse()))
}

func TestSendEventTargeted(t *testing.T) {
	sys := NewSystem()
	a := &stubEndpoint{name: "a", epType: model.EndpointMidi, connected: true}
	b := &stubEndpoint{name: "b", epType: model.EndpointMidi, connected: true}
	idA := model.NewEndpointID()
	sys.Register(idA, a)
	sys.Register(model.NewEndpointID(), b)

	results := sys.SendEvent(NewNoteOn(0, 60, 100).WithTarget(idA))
	require.Len(t, results, 1)
	assert.Equal(t, idA, results[0].Endpoint)
	assert.Equal(t, 1, a.count())
	assert.Equal(t, 0, b.count())

	// Unknown target yields a not-found result, not a silent drop.
	unknown := model.NewEndpointID()
	results = sys.SendEvent(NewNoteOn(0, 60, 100).WithTarget(unknown))
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestSendEventDisconnectedEndpointFails(t *testing.T) {
	sys := NewSystem()
	ep := &stubEndpoint{name: "midi", epType: model.EndpointMidi}
	id := model.NewEndpointID()
	sys.Register(id, ep)

	results := sys.SendEvent(NewNoteOn(0, 60, 100))
	require.Len(t, results, 1, "disconnected endpoints are still attempted")
	assert.Error(t, results[0].Err)

	require.NoError(t, sys.Connect(id))
	assert.True(t, sys.IsConnected(id))
	results = sys.SendEvent(NewNoteOn(0, 60, 100))
	assert.NoError(t, results[0].Err)

	sys.Disconnect(id)
	assert.False(t, sys.IsConnected(id))
}

func TestConnectUnknownEndpoint(t *testing.T) {
	sys := NewSystem()
	err := sys.Connect(model.NewEndpointID())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseMidiDeviceID(t *testing.T) {
	index, name, err := parseMidiDeviceID("3:Scarlett 18i20")
	require.NoError(t, err)
	assert.Equal(t, 3, index)
	assert.Equal(t, "Scarlett 18i20", name)

	// Port names may themselves contain colons.
	index, name, err = parseMidiDeviceID("0:IAC Driver: Bus 1")
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	assert.Equal(t, "IAC Driver: Bus 1", name)

	for _, bad := range []string{"", "no-colon", ":missing-index", "-1:Port", "x:Port", "4:"} {
		_, _, err := parseMidiDeviceID(bad)
		assert.Error(t, err, "device id %q", bad)
	}
}
