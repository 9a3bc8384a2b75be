// Package model holds the project data structures: tracks, media
// containers, timelines, endpoint configurations and the project that owns
// them. Mutation goes through the owning controller; the playback engine
// only reads.
package model

import "github.com/google/uuid"

// TrackID identifies a track.
type TrackID uuid.UUID

// NewTrackID creates a fresh track identity.
func NewTrackID() TrackID {
	return TrackID(uuid.New())
}

func (id TrackID) String() string {
	return uuid.UUID(id).String()
}

// Color is a track display color.
type Color struct {
	R, G, B uint8
}

// TrackType identifies what a track carries.
type TrackType int

const (
	TrackMidi TrackType = iota
	TrackAudio
	TrackInstrument
	TrackAutomation
)

func (t TrackType) String() string {
	switch t {
	case TrackMidi:
		return "midi"
	case TrackAudio:
		return "audio"
	case TrackInstrument:
		return "instrument"
	case TrackAutomation:
		return "automation"
	}
	return "unknown"
}

// Track is a lane on the timeline. A track is owned by exactly one
// Timeline.
type Track struct {
	ID       TrackID
	Name     string
	Type     TrackType
	OutputID *EndpointID // nil = no output routed
	Color    Color
	Muted    bool
	Solo     bool
	Height   uint32 // display height in pixels
}

// NewTrack creates a track with default display settings.
func NewTrack(name string, trackType TrackType) *Track {
	return &Track{
		ID:     NewTrackID(),
		Name:   name,
		Type:   trackType,
		Color:  Color{R: 100, G: 100, B: 200},
		Height: 100,
	}
}

// WithColor sets the display color.
func (t *Track) WithColor(c Color) *Track {
	t.Color = c
	return t
}

// WithOutput routes the track to an output endpoint.
func (t *Track) WithOutput(id EndpointID) *Track {
	t.OutputID = &id
	return t
}
