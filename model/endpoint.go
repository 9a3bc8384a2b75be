package model

import "github.com/google/uuid"

// EndpointID identifies an output endpoint.
type EndpointID uuid.UUID

// NewEndpointID creates a fresh endpoint identity.
func NewEndpointID() EndpointID {
	return EndpointID(uuid.New())
}

func (id EndpointID) String() string {
	return uuid.UUID(id).String()
}

// EndpointType is the kind of destination an endpoint talks to.
type EndpointType int

const (
	EndpointMidi EndpointType = iota
	EndpointAudio
	EndpointPlugin
)

func (t EndpointType) String() string {
	switch t {
	case EndpointMidi:
		return "midi"
	case EndpointAudio:
		return "audio"
	case EndpointPlugin:
		return "plugin"
	}
	return "unknown"
}

// EndpointParameters is the type-specific configuration of an endpoint.
// Exactly one concrete variant matches each EndpointType.
type EndpointParameters interface {
	isEndpointParameters()
}

// MidiParameters configures a MIDI endpoint.
type MidiParameters struct {
	Channel *uint8 // nil = all channels
}

func (MidiParameters) isEndpointParameters() {}

// AudioParameters configures an audio endpoint.
type AudioParameters struct {
	Volume float32 // 0.0 - 1.0
	Pan    float32 // -1.0 - 1.0
}

func (AudioParameters) isEndpointParameters() {}

// PluginParameters configures a plugin endpoint.
type PluginParameters struct {
	Path  string
	State []byte // opaque plugin state blob
}

func (PluginParameters) isEndpointParameters() {}

// EndpointConfig describes an output endpoint. For MIDI endpoints the
// device id is the composite string "<port index>:<port name>".
type EndpointConfig struct {
	ID         EndpointID
	Name       string
	Type       EndpointType
	DeviceID   string
	Enabled    bool
	Parameters EndpointParameters
}

// NewMidiEndpointConfig creates a MIDI endpoint config listening on all
// channels.
func NewMidiEndpointConfig(name, deviceID string) EndpointConfig {
	return EndpointConfig{
		ID:         NewEndpointID(),
		Name:       name,
		Type:       EndpointMidi,
		DeviceID:   deviceID,
		Enabled:    true,
		Parameters: MidiParameters{},
	}
}

// NewAudioEndpointConfig creates an audio endpoint config at unity volume,
// centered.
func NewAudioEndpointConfig(name, deviceID string) EndpointConfig {
	return EndpointConfig{
		ID:         NewEndpointID(),
		Name:       name,
		Type:       EndpointAudio,
		DeviceID:   deviceID,
		Enabled:    true,
		Parameters: AudioParameters{Volume: 1.0},
	}
}

// NewPluginEndpointConfig creates a plugin endpoint config. The plugin
// path doubles as the device id.
func NewPluginEndpointConfig(name, pluginPath string) EndpointConfig {
	return EndpointConfig{
		ID:         NewEndpointID(),
		Name:       name,
		Type:       EndpointPlugin,
		DeviceID:   pluginPath,
		Enabled:    true,
		Parameters: PluginParameters{Path: pluginPath},
	}
}
