package output

import "loom/model"

// Endpoint is a destination that accepts output events. Implementations
// must be safe for use from the playback goroutine and the control
// goroutine.
type Endpoint interface {
	// Name returns the endpoint's display name.
	Name() string

	// IsConnected reports whether the endpoint can currently send.
	IsConnected() bool

	// Connect opens the underlying device. Connecting an already
	// connected endpoint is a no-op.
	Connect() error

	// Disconnect closes the underlying device.
	Disconnect()

	// SendEvent delivers one event. Sending while disconnected fails
	// explicitly rather than dropping the event.
	SendEvent(ev Event) error

	// Type returns the endpoint's declared type.
	Type() model.EndpointType
}
