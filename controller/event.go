package controller

import (
	"loom/engine"
	"loom/model"
	"loom/output"
	"loom/tapestry"
)

// Event is an outcome published to observers. Like Commands, events are
// plain structs dispatched by type.
type Event any

// Project events.
type (
	ProjectCreated  struct{ ProjectID model.ProjectID }
	ProjectModified struct{}
)

// Track events.
type (
	TrackAdded struct {
		TrackID model.TrackID
		Type    model.TrackType
	}
	TrackRemoved struct{ TrackID model.TrackID }
	TrackRenamed struct {
		TrackID model.TrackID
		Name    string
	}
	TrackOutputChanged struct {
		TrackID  model.TrackID
		OutputID *model.EndpointID
	}
	TrackMuteChanged struct {
		TrackID model.TrackID
		Muted   bool
	}
	TrackSoloChanged struct {
		TrackID model.TrackID
		Solo    bool
	}
)

// Container events.
type (
	ContainerAdded struct {
		ContainerID model.ContainerID
		TrackID     model.TrackID
	}
	ContainerRemoved struct{ ContainerID model.ContainerID }
	ContainerMoved   struct {
		ContainerID model.ContainerID
		Position    tapestry.Position
	}
	ContainerResized struct {
		ContainerID model.ContainerID
		Length      tapestry.Duration
	}
	ContainerLoopChanged struct {
		ContainerID model.ContainerID
		LoopCount   *uint32
	}
	ContainerTimeScaleChanged struct {
		ContainerID model.ContainerID
		TimeScale   float64
	}
)

// Timing events.
type (
	TempoChanged struct {
		Position tapestry.Position
		Tempo    tapestry.Tempo
	}
	TimeSignatureChanged struct {
		Position  tapestry.Position
		Signature tapestry.TimeSignature
	}
)

// Playback events.
type (
	PlaybackStarted         struct{}
	PlaybackStopped         struct{}
	PlaybackPaused          struct{}
	PlaybackPositionChanged struct{ Position tapestry.Position }
)

// Output events.
type (
	OutputsScanned     struct{ Ports []output.MidiPortInfo }
	OutputAdded        struct{ OutputID model.EndpointID }
	OutputConnected    struct{ OutputID model.EndpointID }
	OutputDisconnected struct{ OutputID model.EndpointID }
	OutputError        struct {
		OutputID model.EndpointID
		Message  string
	}
)

// ClockSourceChanged reports a clock switch.
type ClockSourceChanged struct{ Kind engine.ClockKind }

// Error carries any command failure as free text.
type Error struct{ Message string }
