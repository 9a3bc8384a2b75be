package model

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"loom/tapestry"
)

// TimelineID identifies a timeline.
type TimelineID uuid.UUID

// NewTimelineID creates a fresh timeline identity.
func NewTimelineID() TimelineID {
	return TimelineID(uuid.New())
}

func (id TimelineID) String() string {
	return uuid.UUID(id).String()
}

// indexEntry is one slot in a track's position index. Entries order by
// (position, container id) so containers starting at the same tick can
// coexist on one track.
type indexEntry struct {
	pos tapestry.Position
	id  ContainerID
}

func (e indexEntry) less(other indexEntry) bool {
	if e.pos != other.pos {
		return e.pos < other.pos
	}
	return bytes.Compare(e.id[:], other.id[:]) < 0
}

// Timeline owns an ordered list of tracks, a set of containers, and a
// per-track index from start position to container identity. Every indexed
// container exists in the container set and vice versa.
type Timeline struct {
	ID         TimelineID
	Name       string
	Tracks     []*Track
	Containers map[ContainerID]*MediaContainer

	index map[TrackID][]indexEntry
}

// NewTimeline creates an empty timeline.
func NewTimeline(name string) *Timeline {
	return &Timeline{
		ID:         NewTimelineID(),
		Name:       name,
		Containers: make(map[ContainerID]*MediaContainer),
		index:      make(map[TrackID][]indexEntry),
	}
}

// AddTrack appends a track and returns its id.
func (tl *Timeline) AddTrack(t *Track) TrackID {
	tl.Tracks = append(tl.Tracks, t)
	tl.index[t.ID] = nil
	return t.ID
}

// Track returns the track with the given id, or nil.
func (tl *Timeline) Track(id TrackID) *Track {
	for _, t := range tl.Tracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RemoveTrack removes a track and every container on it. Reports whether
// the track existed.
func (tl *Timeline) RemoveTrack(id TrackID) bool {
	for i, t := range tl.Tracks {
		if t.ID != id {
			continue
		}
		for _, e := range tl.index[id] {
			delete(tl.Containers, e.id)
		}
		delete(tl.index, id)
		tl.Tracks = append(tl.Tracks[:i], tl.Tracks[i+1:]...)
		return true
	}
	return false
}

// insertEntry places an entry into a track's index, keeping (position, id)
// order.
func (tl *Timeline) insertEntry(trackID TrackID, e indexEntry) {
	entries := tl.index[trackID]
	i := sort.Search(len(entries), func(i int) bool {
		return !entries[i].less(e)
	})
	entries = append(entries, indexEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	tl.index[trackID] = entries
}

// removeEntry drops a container's entry from a track's index. Reports
// whether it was present.
func (tl *Timeline) removeEntry(trackID TrackID, id ContainerID) bool {
	entries := tl.index[trackID]
	for i, e := range entries {
		if e.id == id {
			tl.index[trackID] = append(entries[:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// AddContainer places a container on a track. Reports whether the track
// exists; on an unknown track nothing is inserted.
func (tl *Timeline) AddContainer(trackID TrackID, c *MediaContainer) bool {
	if _, ok := tl.index[trackID]; !ok {
		return false
	}
	tl.Containers[c.ID] = c
	tl.insertEntry(trackID, indexEntry{pos: c.Position, id: c.ID})
	return true
}

// Container returns the container with the given id, or nil.
func (tl *Timeline) Container(id ContainerID) *MediaContainer {
	return tl.Containers[id]
}

// RemoveContainer removes a container from the timeline and its track
// index. Reports whether it existed.
func (tl *Timeline) RemoveContainer(id ContainerID) bool {
	if _, ok := tl.Containers[id]; !ok {
		return false
	}
	for trackID := range tl.index {
		if tl.removeEntry(trackID, id) {
			break
		}
	}
	delete(tl.Containers, id)
	return true
}

// MoveContainer relocates a container to a new start position, updating
// its track index entry and stored position together. Reports whether the
// container was found. The track is located by scanning all track indices;
// container counts per track are small enough for that.
func (tl *Timeline) MoveContainer(id ContainerID, newPos tapestry.Position) bool {
	c, ok := tl.Containers[id]
	if !ok {
		return false
	}
	for trackID := range tl.index {
		if tl.removeEntry(trackID, id) {
			c.Position = newPos
			tl.insertEntry(trackID, indexEntry{pos: newPos, id: id})
			return true
		}
	}
	return false
}

// TrackContainers returns a track's containers in index order.
func (tl *Timeline) TrackContainers(trackID TrackID) []*MediaContainer {
	entries := tl.index[trackID]
	result := make([]*MediaContainer, 0, len(entries))
	for _, e := range entries {
		if c, ok := tl.Containers[e.id]; ok {
			result = append(result, c)
		}
	}
	return result
}

// TrackContainersInRange returns the track's containers active in
// [start, end): those starting inside the window, plus those starting
// before it whose end extends past start. end is exclusive.
func (tl *Timeline) TrackContainersInRange(trackID TrackID, start, end tapestry.Position) []*MediaContainer {
	var result []*MediaContainer

	for _, e := range tl.index[trackID] {
		if e.pos >= end {
			break
		}
		c, ok := tl.Containers[e.id]
		if !ok {
			continue
		}
		if e.pos >= start {
			result = append(result, c)
		} else if c.End() > start {
			result = append(result, c)
		}
	}
	return result
}

// ContainersInRange returns the union of TrackContainersInRange over all
// tracks. Track order is unspecified.
func (tl *Timeline) ContainersInRange(start, end tapestry.Position) []*MediaContainer {
	var result []*MediaContainer
	for trackID := range tl.index {
		result = append(result, tl.TrackContainersInRange(trackID, start, end)...)
	}
	return result
}
