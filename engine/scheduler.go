package engine

import (
	"sort"
	"sync"

	"loom/output"
	"loom/tapestry"
)

// ScheduledEvent is an event together with the position it is due at.
type ScheduledEvent struct {
	Position tapestry.Position
	Event    output.Event
}

type scheduleBucket struct {
	pos    tapestry.Position
	events []output.Event
}

// Scheduler is a time-ordered holding structure for output events. It has
// no coupling to the timeline: any producer can pre-register events at
// absolute positions and drain them in windows.
type Scheduler struct {
	mu      sync.Mutex
	buckets []scheduleBucket // sorted by position
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule registers an event at a position. Events sharing a position
// keep their insertion order.
func (s *Scheduler) Schedule(pos tapestry.Position, ev output.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.buckets), func(i int) bool {
		return s.buckets[i].pos >= pos
	})
	if i < len(s.buckets) && s.buckets[i].pos == pos {
		s.buckets[i].events = append(s.buckets[i].events, ev)
		return
	}
	s.buckets = append(s.buckets, scheduleBucket{})
	copy(s.buckets[i+1:], s.buckets[i:])
	s.buckets[i] = scheduleBucket{pos: pos, events: []output.Event{ev}}
}

// Events returns every event due in [start, end) in position order,
// insertion order within a position.
func (s *Scheduler) Events(start, end tapestry.Position) []ScheduledEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []ScheduledEvent
	for _, b := range s.buckets {
		if b.pos >= end {
			break
		}
		if b.pos < start {
			continue
		}
		for _, ev := range b.events {
			result = append(result, ScheduledEvent{Position: b.pos, Event: ev})
		}
	}
	return result
}

// Clear drops all scheduled events.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = nil
}
