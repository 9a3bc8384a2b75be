// Package controller is the command surface of the engine: inbound
// commands mutate the project and drive transport, outcomes fan out to
// observers as past-tense events, and snapshots project read-only state
// for a UI.
package controller

import (
	"loom/engine"
	"loom/model"
	"loom/tapestry"
)

// Command is a request sent to the controller. Commands are plain structs
// dispatched by type, the same shape bubbletea messages take.
type Command any

// Project commands.
type (
	// CreateProject replaces the current project with a fresh one.
	CreateProject struct{ Name string }
	// OpenProject loads a project from disk. Persistence lives outside
	// this module; the command surfaces as an error to observers.
	OpenProject struct{ Path string }
	// SaveProject stores the project to disk. Same status as OpenProject.
	SaveProject struct{ Path string }
)

// Track commands.
type (
	AddTrack struct {
		Name string
		Type model.TrackType
	}
	RemoveTrack struct{ TrackID model.TrackID }
	RenameTrack struct {
		TrackID model.TrackID
		Name    string
	}
	SetTrackOutput struct {
		TrackID  model.TrackID
		OutputID *model.EndpointID // nil clears the route
	}
	MuteTrack struct {
		TrackID model.TrackID
		Muted   bool
	}
	SoloTrack struct {
		TrackID model.TrackID
		Solo    bool
	}
)

// Container commands.
type (
	AddContainer struct {
		TrackID  model.TrackID
		Position tapestry.Position
		Content  model.MediaContent
	}
	RemoveContainer struct{ ContainerID model.ContainerID }
	MoveContainer   struct {
		ContainerID model.ContainerID
		NewPosition tapestry.Position
	}
	ResizeContainer struct {
		ContainerID model.ContainerID
		NewLength   tapestry.Duration
	}
	SetContainerLoop struct {
		ContainerID model.ContainerID
		LoopCount   *uint32
	}
	SetContainerTimeScale struct {
		ContainerID model.ContainerID
		TimeScale   float64
	}
)

// Timing commands.
type (
	SetTempo struct {
		Position tapestry.Position
		Tempo    tapestry.Tempo
	}
	SetTimeSignature struct {
		Position  tapestry.Position
		Signature tapestry.TimeSignature
	}
)

// Transport commands.
type (
	Play  struct{}
	Stop  struct{}
	Pause struct{}
	Seek  struct{ Position tapestry.Position }
	// Record arms or disarms recording. No recording path exists yet;
	// the command surfaces as an error to observers.
	Record struct{ Enabled bool }
)

// Output commands.
type (
	ScanOutputs      struct{}
	AddOutput        struct{ Config model.EndpointConfig }
	ConnectOutput    struct{ OutputID model.EndpointID }
	DisconnectOutput struct{ OutputID model.EndpointID }
)

// SetClockSource switches the playback clock.
type SetClockSource struct{ Kind engine.ClockKind }

// Shutdown stops playback and terminates the control loop.
type Shutdown struct{}
