package output

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"loom/debug"
	"loom/model"
)

// MidiPortInfo is one scanned MIDI output port.
type MidiPortInfo struct {
	Index int
	Name  string
}

// DeviceID returns the composite device id string for this port, the
// format endpoint configs carry: "<port index>:<port name>".
func (p MidiPortInfo) DeviceID() string {
	return fmt.Sprintf("%d:%s", p.Index, p.Name)
}

// SendResult is the outcome of one attempted send to one endpoint.
type SendResult struct {
	Endpoint model.EndpointID
	Err      error
}

// System is the registry of output endpoints. Dispatch holds the registry
// lock for the duration of a send.
type System struct {
	mu        sync.Mutex
	endpoints map[model.EndpointID]Endpoint
}

// NewSystem creates an empty endpoint registry.
func NewSystem() *System {
	return &System{endpoints: make(map[model.EndpointID]Endpoint)}
}

// parseMidiDeviceID splits a composite "<port index>:<port name>" device
// id.
func parseMidiDeviceID(deviceID string) (int, string, error) {
	parts := strings.SplitN(deviceID, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", fmt.Errorf("invalid MIDI device id %q, want \"<port index>:<port name>\"", deviceID)
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil || index < 0 {
		return 0, "", fmt.Errorf("invalid MIDI port index in device id %q", deviceID)
	}
	return index, parts[1], nil
}

// AddEndpoint validates a configuration and constructs the concrete
// endpoint for it. On any validation failure nothing is inserted.
func (s *System) AddEndpoint(cfg model.EndpointConfig) error {
	switch cfg.Type {
	case model.EndpointMidi:
		params, ok := cfg.Parameters.(model.MidiParameters)
		if !ok {
			return fmt.Errorf("endpoint %q: parameters do not match midi type", cfg.Name)
		}
		index, portName, err := parseMidiDeviceID(cfg.DeviceID)
		if err != nil {
			return fmt.Errorf("endpoint %q: %w", cfg.Name, err)
		}
		s.Register(cfg.ID, NewMidiEndpoint(cfg.ID, cfg.Name, index, portName, params.Channel))
		return nil

	default:
		return fmt.Errorf("endpoint %q: type %s not implemented", cfg.Name, cfg.Type)
	}
}

// Register inserts an already constructed endpoint under an identity.
func (s *System) Register(id model.EndpointID, ep Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints[id] = ep
}

// Remove drops an endpoint from the registry. Reports whether it existed.
func (s *System) Remove(id model.EndpointID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.endpoints[id]; !ok {
		return false
	}
	delete(s.endpoints, id)
	return true
}

// Connect opens the endpoint's device.
func (s *System) Connect(id model.EndpointID) error {
	s.mu.Lock()
	ep, ok := s.endpoints[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("endpoint %s not found", id)
	}
	return ep.Connect()
}

// Disconnect closes the endpoint's device. Unknown ids are ignored.
func (s *System) Disconnect(id model.EndpointID) {
	s.mu.Lock()
	ep, ok := s.endpoints[id]
	s.mu.Unlock()
	if ok {
		ep.Disconnect()
	}
}

// IsConnected reports whether the endpoint exists and is connected.
func (s *System) IsConnected(id model.EndpointID) bool {
	s.mu.Lock()
	ep, ok := s.endpoints[id]
	s.mu.Unlock()
	return ok && ep.IsConnected()
}

// SendEvent dispatches one event: to its specific target when set,
// otherwise broadcast to every endpoint whose type accepts the event's
// category. One result per attempted send.
func (s *System) SendEvent(ev Event) []SendResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Target != nil {
		ep, ok := s.endpoints[*ev.Target]
		if !ok {
			return []SendResult{{
				Endpoint: *ev.Target,
				Err:      fmt.Errorf("endpoint %s not found", *ev.Target),
			}}
		}
		return []SendResult{{Endpoint: *ev.Target, Err: ep.SendEvent(ev)}}
	}

	var results []SendResult
	for id, ep := range s.endpoints {
		accepts := (ev.IsMidi() && ep.Type() == model.EndpointMidi) ||
			(ev.IsAudio() && ep.Type() == model.EndpointAudio)
		if !accepts {
			continue
		}
		results = append(results, SendResult{Endpoint: id, Err: ep.SendEvent(ev)})
	}
	return results
}

// ScanMidiOutputs lists the system's MIDI output ports. Port enumeration
// can hang on a wedged MIDI server, so the scan is bounded by a timeout.
func (s *System) ScanMidiOutputs() []MidiPortInfo {
	ch := make(chan []MidiPortInfo, 1)
	go func() {
		ports := gomidi.GetOutPorts()
		infos := make([]MidiPortInfo, 0, len(ports))
		for i, port := range ports {
			infos = append(infos, MidiPortInfo{Index: i, Name: port.String()})
		}
		ch <- infos
	}()

	select {
	case infos := <-ch:
		return infos
	case <-time.After(3 * time.Second):
		debug.Log("output", "MIDI port scan timed out")
		return nil
	}
}
