package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/tapestry"
)

func newTestTimeline(t *testing.T) (*Timeline, TrackID) {
	t.Helper()
	tl := NewTimeline("test")
	trackID := tl.AddTrack(NewTrack("Drums", TrackMidi))
	return tl, trackID
}

func addContainer(t *testing.T, tl *Timeline, trackID TrackID, pos, length uint64) *MediaContainer {
	t.Helper()
	c := NewMediaContainer(tapestry.Position(pos), PatternContent(NewPatternID())).
		WithLength(tapestry.Duration(length))
	require.True(t, tl.AddContainer(trackID, c))
	return c
}

func containerIDs(cs []*MediaContainer) map[ContainerID]bool {
	ids := make(map[ContainerID]bool, len(cs))
	for _, c := range cs {
		ids[c.ID] = true
	}
	return ids
}

func TestTrackContainersInRangeBounds(t *testing.T) {
	tl, trackID := newTestTimeline(t)

	atStart := addContainer(t, tl, trackID, 100, 50)
	atEnd := addContainer(t, tl, trackID, 200, 50)
	inside := addContainer(t, tl, trackID, 150, 10)

	got := containerIDs(tl.TrackContainersInRange(trackID, 100, 200))

	assert.True(t, got[atStart.ID], "start bound is inclusive")
	assert.True(t, got[inside.ID])
	assert.False(t, got[atEnd.ID], "end bound is exclusive")
}

func TestTrackContainersInRangeOverlap(t *testing.T) {
	tl, trackID := newTestTimeline(t)

	// Starts before the window and extends into it.
	overlapping := addContainer(t, tl, trackID, 50, 100)
	// Starts before the window and ends exactly at its start.
	touching := addContainer(t, tl, trackID, 50, 50)
	// Fully before the window.
	before := addContainer(t, tl, trackID, 10, 20)

	got := containerIDs(tl.TrackContainersInRange(trackID, 100, 200))

	assert.True(t, got[overlapping.ID], "position+length > start means active")
	assert.False(t, got[touching.ID], "end == start is not overlap")
	assert.False(t, got[before.ID])
}

func TestContainersInRangeUnionsTracks(t *testing.T) {
	tl, track1 := newTestTimeline(t)
	track2 := tl.AddTrack(NewTrack("Bass", TrackMidi))

	c1 := addContainer(t, tl, track1, 100, 50)
	c2 := addContainer(t, tl, track2, 120, 50)
	far := addContainer(t, tl, track2, 5000, 50)

	got := containerIDs(tl.ContainersInRange(100, 200))
	assert.True(t, got[c1.ID])
	assert.True(t, got[c2.ID])
	assert.False(t, got[far.ID])
}

func TestMoveContainer(t *testing.T) {
	tl, trackID := newTestTimeline(t)
	c := addContainer(t, tl, trackID, 100, 50)

	require.True(t, tl.MoveContainer(c.ID, 1000))

	assert.Equal(t, tapestry.Position(1000), c.Position)
	assert.Empty(t, tl.TrackContainersInRange(trackID, 100, 200),
		"old range no longer returns the container")

	got := containerIDs(tl.TrackContainersInRange(trackID, 1000, 1100))
	assert.True(t, got[c.ID], "new range returns the container")

	assert.False(t, tl.MoveContainer(NewContainerID(), 0), "unknown container")
}

func TestCoincidentStartsCoexist(t *testing.T) {
	tl, trackID := newTestTimeline(t)

	a := addContainer(t, tl, trackID, 100, 50)
	b := addContainer(t, tl, trackID, 100, 80)

	got := containerIDs(tl.TrackContainersInRange(trackID, 100, 101))
	assert.True(t, got[a.ID])
	assert.True(t, got[b.ID], "two containers at the same start tick both stay indexed")

	require.True(t, tl.RemoveContainer(a.ID))
	got = containerIDs(tl.TrackContainersInRange(trackID, 100, 101))
	assert.False(t, got[a.ID])
	assert.True(t, got[b.ID])
}

func TestAddContainerUnknownTrack(t *testing.T) {
	tl, _ := newTestTimeline(t)

	c := NewMediaContainer(0, PatternContent(NewPatternID()))
	assert.False(t, tl.AddContainer(NewTrackID(), c))
	assert.Nil(t, tl.Container(c.ID), "nothing inserted for an unknown track")
}

func TestRemoveTrackDropsContainers(t *testing.T) {
	tl, trackID := newTestTimeline(t)
	c := addContainer(t, tl, trackID, 100, 50)

	require.True(t, tl.RemoveTrack(trackID))
	assert.Nil(t, tl.Track(trackID))
	assert.Nil(t, tl.Container(c.ID))
	assert.False(t, tl.RemoveTrack(trackID))
}

func TestTrackContainersOrdered(t *testing.T) {
	tl, trackID := newTestTimeline(t)

	addContainer(t, tl, trackID, 300, 10)
	addContainer(t, tl, trackID, 100, 10)
	addContainer(t, tl, trackID, 200, 10)

	cs := tl.TrackContainers(trackID)
	require.Len(t, cs, 3)
	assert.Equal(t, tapestry.Position(100), cs[0].Position)
	assert.Equal(t, tapestry.Position(200), cs[1].Position)
	assert.Equal(t, tapestry.Position(300), cs[2].Position)
}
