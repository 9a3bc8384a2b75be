package output

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"loom/model"
)

// MidiEndpoint sends events to a system MIDI output port as raw
// status+data bytes. The port is resolved by index and name from the
// composite device id at connect time.
type MidiEndpoint struct {
	id        model.EndpointID
	name      string
	portIndex int
	portName  string
	channel   *uint8 // channel filter, nil = all channels

	mu   sync.Mutex
	send func(gomidi.Message) error // nil = disconnected
}

// NewMidiEndpoint creates an unconnected MIDI endpoint for the given port.
func NewMidiEndpoint(id model.EndpointID, name string, portIndex int, portName string, channel *uint8) *MidiEndpoint {
	return &MidiEndpoint{
		id:        id,
		name:      name,
		portIndex: portIndex,
		portName:  portName,
		channel:   channel,
	}
}

// Name returns the endpoint's display name.
func (m *MidiEndpoint) Name() string {
	return m.name
}

// Type returns model.EndpointMidi.
func (m *MidiEndpoint) Type() model.EndpointType {
	return model.EndpointMidi
}

// IsConnected reports whether the port is open.
func (m *MidiEndpoint) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.send != nil
}

// Connect opens the MIDI output port. A no-op when already connected.
func (m *MidiEndpoint) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.send != nil {
		return nil
	}

	ports := gomidi.GetOutPorts()
	if m.portIndex < 0 || m.portIndex >= len(ports) {
		return fmt.Errorf("midi port index %d out of range (%d ports)", m.portIndex, len(ports))
	}

	send, err := gomidi.SendTo(ports[m.portIndex])
	if err != nil {
		return fmt.Errorf("open midi port %q: %w", m.portName, err)
	}

	m.send = send
	return nil
}

// Disconnect closes the port.
func (m *MidiEndpoint) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.send = nil
}

// SendEvent encodes the event to raw MIDI bytes and sends it. Fails when
// disconnected. Events on a channel filtered out by the endpoint's channel
// parameter are skipped.
func (m *MidiEndpoint) SendEvent(ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.send == nil {
		return fmt.Errorf("midi endpoint %q not connected", m.name)
	}

	if m.channel != nil && ev.IsMidi() && ev.Channel != *m.channel {
		return nil
	}

	data, err := MidiBytes(ev)
	if err != nil {
		return err
	}
	return m.send(gomidi.Message(data))
}

// MidiBytes encodes an event to its raw wire bytes. The channel goes in
// the low nibble of the status byte; note-off carries a zero velocity
// byte; pitch bend is the 14-bit unsigned value (signed bend + 8192) split
// into LSB and MSB.
func MidiBytes(ev Event) ([]byte, error) {
	ch := ev.Channel & 0x0F

	switch ev.Kind {
	case NoteOn:
		return []byte{0x90 | ch, ev.Note, ev.Velocity}, nil
	case NoteOff:
		return []byte{0x80 | ch, ev.Note, 0}, nil
	case ControlChange:
		return []byte{0xB0 | ch, ev.Controller, ev.Value}, nil
	case ProgramChange:
		return []byte{0xC0 | ch, ev.Program}, nil
	case PitchBend:
		bend := uint16(int32(ev.Bend) + 8192)
		return []byte{0xE0 | ch, byte(bend & 0x7F), byte((bend >> 7) & 0x7F)}, nil
	case Aftertouch:
		return []byte{0xD0 | ch, ev.Pressure}, nil
	case PolyAftertouch:
		return []byte{0xA0 | ch, ev.Note, ev.Pressure}, nil
	}

	return nil, fmt.Errorf("event kind %d not encodable as MIDI", ev.Kind)
}
