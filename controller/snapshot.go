package controller

import (
	"loom/model"
	"loom/tapestry"
)

// Snapshots are value copies of the project state, safe to hand to
// observers without further locking. They carry display-oriented fields
// only; mutation still goes through Commands.

// TrackSnapshot is a read-only copy of one track.
type TrackSnapshot struct {
	ID         model.TrackID
	Name       string
	Type       model.TrackType
	OutputID   *model.EndpointID
	Color      model.Color
	Muted      bool
	Solo       bool
	Height     uint32
	Containers []ContainerSnapshot
}

// ContainerSnapshot is a read-only copy of one media container.
type ContainerSnapshot struct {
	ID        model.ContainerID
	Position  tapestry.Position
	Length    tapestry.Duration
	End       tapestry.Position
	Mode      model.PlaybackMode
	LoopCount *uint32
	TimeScale float64
	Content   model.MediaContent
}

// TimelineSnapshot is a read-only copy of one timeline with its tracks in
// display order.
type TimelineSnapshot struct {
	ID     model.TimelineID
	Name   string
	Tracks []TrackSnapshot
}

// EndpointSnapshot is a read-only copy of one endpoint config plus its
// live connection state.
type EndpointSnapshot struct {
	ID        model.EndpointID
	Name      string
	Type      model.EndpointType
	DeviceID  string
	Enabled   bool
	Connected bool
}

// ProjectSnapshot is a read-only copy of the whole project surface the UI
// draws from.
type ProjectSnapshot struct {
	ID        model.ProjectID
	Name      string
	Version   uint32
	Tempo     tapestry.Tempo
	Signature tapestry.TimeSignature
	Timeline  *TimelineSnapshot // active timeline, nil when none
	Endpoints []EndpointSnapshot
	Playing   bool
	Position  tapestry.Position
	Bar       uint32  // whole bars before Position
	Beat      float64 // beats into the current bar
}

func snapshotContainer(c *model.MediaContainer) ContainerSnapshot {
	var loop *uint32
	if c.LoopCount != nil {
		v := *c.LoopCount
		loop = &v
	}
	return ContainerSnapshot{
		ID:        c.ID,
		Position:  c.Position,
		Length:    c.Length,
		End:       c.End(),
		Mode:      c.Mode,
		LoopCount: loop,
		TimeScale: c.TimeScale,
		Content:   c.Content,
	}
}

func snapshotTrack(tl *model.Timeline, t *model.Track) TrackSnapshot {
	var out *model.EndpointID
	if t.OutputID != nil {
		v := *t.OutputID
		out = &v
	}
	containers := tl.TrackContainers(t.ID)
	snap := TrackSnapshot{
		ID:         t.ID,
		Name:       t.Name,
		Type:       t.Type,
		OutputID:   out,
		Color:      t.Color,
		Muted:      t.Muted,
		Solo:       t.Solo,
		Height:     t.Height,
		Containers: make([]ContainerSnapshot, 0, len(containers)),
	}
	for _, c := range containers {
		snap.Containers = append(snap.Containers, snapshotContainer(c))
	}
	return snap
}

func snapshotTimeline(tl *model.Timeline) TimelineSnapshot {
	snap := TimelineSnapshot{
		ID:     tl.ID,
		Name:   tl.Name,
		Tracks: make([]TrackSnapshot, 0, len(tl.Tracks)),
	}
	for _, t := range tl.Tracks {
		snap.Tracks = append(snap.Tracks, snapshotTrack(tl, t))
	}
	return snap
}
