package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/output"
	"loom/tapestry"
)

func TestSchedulerWindow(t *testing.T) {
	s := NewScheduler()
	s.Schedule(100, output.NewNoteOn(0, 60, 100))
	s.Schedule(200, output.NewNoteOn(0, 62, 100))
	s.Schedule(300, output.NewNoteOn(0, 64, 100))

	got := s.Events(100, 300)
	require.Len(t, got, 2, "end bound is exclusive, start inclusive")
	assert.Equal(t, tapestry.Position(100), got[0].Position)
	assert.Equal(t, tapestry.Position(200), got[1].Position)

	assert.Empty(t, s.Events(301, 400))
}

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	// Out-of-order registration, plus two events sharing a position.
	s.Schedule(500, output.NewNoteOn(0, 70, 100))
	s.Schedule(100, output.NewNoteOn(0, 60, 100))
	s.Schedule(500, output.NewNoteOff(0, 70))

	got := s.Events(0, 1000)
	require.Len(t, got, 3)
	assert.Equal(t, tapestry.Position(100), got[0].Position)
	assert.Equal(t, output.NoteOn, got[1].Event.Kind, "insertion order kept within a position")
	assert.Equal(t, output.NoteOff, got[2].Event.Kind)
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	s.Schedule(100, output.NewSyncPulse())
	s.Clear()
	assert.Empty(t, s.Events(0, 1000))
}
