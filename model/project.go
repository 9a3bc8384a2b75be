package model

import (
	"fmt"

	"github.com/google/uuid"

	"loom/tapestry"
)

// ProjectID identifies a project.
type ProjectID uuid.UUID

// NewProjectID creates a fresh project identity.
func NewProjectID() ProjectID {
	return ProjectID(uuid.New())
}

func (id ProjectID) String() string {
	return uuid.UUID(id).String()
}

// ProjectSettings are project-wide defaults and rates.
type ProjectSettings struct {
	ReferenceSampleRate uint32
	PlaybackSampleRate  uint32
	DefaultMidiOutput   *EndpointID
	DefaultMidiInput    string
	DefaultMidiChannel  uint8
	DefaultVelocity     uint8
	DefaultNoteDuration tapestry.NoteValue
	SnapToGrid          bool
	GridSize            tapestry.NoteValue
	AutoQuantize        bool
}

// DefaultProjectSettings returns the settings new projects start with.
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		ReferenceSampleRate: tapestry.DefaultSampleRate,
		PlaybackSampleRate:  tapestry.DefaultSampleRate,
		DefaultMidiChannel:  0,
		DefaultVelocity:     100,
		DefaultNoteDuration: tapestry.Sixteenth,
		SnapToGrid:          true,
		GridSize:            tapestry.Sixteenth,
		AutoQuantize:        true,
	}
}

// Project is the root of the data model: settings, tempo map, timelines
// and endpoint configurations. It lives as long as the session and is
// mutated only through the controller.
type Project struct {
	ID       ProjectID
	Name     string
	Settings ProjectSettings
	Version  uint32 // modification counter
	TempoMap *tapestry.TempoMap

	Timelines        map[TimelineID]*Timeline
	Endpoints        map[EndpointID]EndpointConfig
	ActiveTimelineID *TimelineID
}

// NewProject creates a project with default settings and one empty "Main"
// timeline, active.
func NewProject(name string) *Project {
	settings := DefaultProjectSettings()
	timeline := NewTimeline("Main")
	id := timeline.ID

	return &Project{
		ID:               NewProjectID(),
		Name:             name,
		Settings:         settings,
		Version:          1,
		TempoMap:         tapestry.NewTempoMap(settings.ReferenceSampleRate, settings.PlaybackSampleRate),
		Timelines:        map[TimelineID]*Timeline{id: timeline},
		Endpoints:        make(map[EndpointID]EndpointConfig),
		ActiveTimelineID: &id,
	}
}

// ActiveTimeline returns the active timeline, or nil when none is set.
func (p *Project) ActiveTimeline() *Timeline {
	if p.ActiveTimelineID == nil {
		return nil
	}
	return p.Timelines[*p.ActiveTimelineID]
}

// AddTimeline creates and registers a new timeline.
func (p *Project) AddTimeline(name string) TimelineID {
	tl := NewTimeline(name)
	p.Timelines[tl.ID] = tl
	p.Version++
	return tl.ID
}

// SetActiveTimeline switches the active timeline.
func (p *Project) SetActiveTimeline(id TimelineID) error {
	if _, ok := p.Timelines[id]; !ok {
		return fmt.Errorf("timeline %s not found", id)
	}
	p.ActiveTimelineID = &id
	p.Version++
	return nil
}

// AddEndpoint registers an endpoint configuration.
func (p *Project) AddEndpoint(cfg EndpointConfig) EndpointID {
	p.Endpoints[cfg.ID] = cfg
	p.Version++
	return cfg.ID
}

// Endpoint returns the endpoint config with the given id.
func (p *Project) Endpoint(id EndpointID) (EndpointConfig, bool) {
	cfg, ok := p.Endpoints[id]
	return cfg, ok
}
