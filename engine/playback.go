package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"loom/debug"
	"loom/model"
	"loom/output"
	"loom/tapestry"
)

// Beat pulse: one short note per beat, pitch cycling over twelve steps
// from a fixed base.
const (
	pulseBasePitch = 60
	pulseSteps     = 12
)

// loopSleep bounds how long the playback loop yields between iterations.
const loopSleep = time.Millisecond

// ContentResolver turns a container's content into output events for an
// elapsed window. Content stores live outside this module, so the engine
// only fixes the contract: one container may yield zero or more events per
// window.
type ContentResolver interface {
	Resolve(c *model.MediaContainer, start, end tapestry.Position, tm *tapestry.TempoMap) []output.Event
}

// Engine is the playback state machine. It owns a clock source, advances
// position on a dedicated goroutine while playing, queries the active
// timeline for the elapsed window, and forwards the produced events to the
// output system.
type Engine struct {
	projectMu *sync.RWMutex
	project   *model.Project
	out       *output.System
	sched     *Scheduler
	resolver  ContentResolver

	mu        sync.Mutex // guards clock, last and state transitions
	clock     ClockSource
	clockKind ClockKind
	last      tapestry.Position

	playing atomic.Bool
	pulse   atomic.Bool
	wg      sync.WaitGroup

	pulseStep int // playback goroutine only

	onPosition func(tapestry.Position)
}

// NewEngine creates a stopped engine using an internal clock at the
// project's reference sample rate. projectMu is the lock guarding the
// shared project.
func NewEngine(project *model.Project, projectMu *sync.RWMutex, out *output.System) *Engine {
	e := &Engine{
		projectMu: projectMu,
		project:   project,
		out:       out,
		sched:     NewScheduler(),
		clock:     NewInternalClock(project.Settings.ReferenceSampleRate),
		clockKind: ClockInternal,
	}
	e.pulse.Store(true)
	return e
}

// SetProject swaps the project the engine reads from. Playback is stopped
// first; the caller must hold the project write lock or otherwise ensure
// no reader is active.
func (e *Engine) SetProject(project *model.Project) {
	if e.playing.Load() {
		e.Stop()
	}
	e.project = project
	e.sched.Clear()
}

// Scheduler returns the engine's event scheduler.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// SetResolver installs the content resolver used for containers in the
// elapsed window.
func (e *Engine) SetResolver(r ContentResolver) {
	e.resolver = r
}

// SetBeatPulse toggles the per-beat reference pulse.
func (e *Engine) SetBeatPulse(enabled bool) {
	e.pulse.Store(enabled)
}

// SetOnPosition installs the position-changed callback invoked once per
// loop iteration.
func (e *Engine) SetOnPosition(fn func(tapestry.Position)) {
	e.onPosition = fn
}

// IsPlaying reports whether the playback loop is running.
func (e *Engine) IsPlaying() bool {
	return e.playing.Load()
}

// Position returns the current playback position.
func (e *Engine) Position() tapestry.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Now()
}

// Play starts the playback loop. A no-op when already playing.
func (e *Engine) Play() {
	e.mu.Lock()
	if e.playing.Load() {
		e.mu.Unlock()
		return
	}
	e.playing.Store(true)
	e.pulseStep = 0
	e.clock.Start(e.last)
	e.mu.Unlock()

	debug.Log("engine", "play from tick %d", e.last.Ticks())
	e.wg.Add(1)
	go e.run()
}

// Stop halts the playback loop and blocks until it has fully exited. No
// events are emitted after Stop returns. The position is kept.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.playing.Load() {
		e.mu.Unlock()
		return
	}
	e.playing.Store(false)
	e.mu.Unlock()

	e.wg.Wait()

	e.mu.Lock()
	e.clock.Stop()
	e.last = e.clock.Now()
	e.mu.Unlock()
	debug.Log("engine", "stopped at tick %d", e.last.Ticks())
}

// Pause halts the loop keeping the position, same engine-level mechanics
// as Stop; the controller distinguishes the two for observers.
func (e *Engine) Pause() {
	e.Stop()
}

// Seek repositions playback without changing play state. The clock is
// re-anchored so elapsed-time samples stay consistent with the new
// position.
func (e *Engine) Seek(pos tapestry.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = pos
	e.clock.Seek(pos)
	debug.Log("engine", "seek to tick %d", pos.Ticks())
}

// SetClockKind switches the active clock source. Switching while playing
// stops playback first.
func (e *Engine) SetClockKind(kind ClockKind) error {
	switch kind {
	case ClockInternal:
		e.setClock(NewInternalClock(e.project.Settings.ReferenceSampleRate), kind)
		return nil
	case ClockMTC:
		return fmt.Errorf("clock source %s unavailable: no MTC receiver", kind)
	default:
		return fmt.Errorf("unknown clock source %d", kind)
	}
}

// ClockKind returns the active clock source kind.
func (e *Engine) ClockKind() ClockKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clockKind
}

// setClock swaps the clock source, stopping playback first when needed.
func (e *Engine) setClock(clock ClockSource, kind ClockKind) {
	if e.playing.Load() {
		e.Stop()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock = clock
	e.clockKind = kind
	clock.Seek(e.last)
}

// SetClock installs an arbitrary clock source, stopping playback first.
func (e *Engine) SetClock(clock ClockSource) {
	e.setClock(clock, e.clockKind)
}

// run is the playback loop. One iteration: sample the clock, publish the
// position, gather events for the elapsed window (container content, then
// scheduled events, then the beat pulse), forward them in order, yield.
func (e *Engine) run() {
	defer e.wg.Done()

	for e.playing.Load() {
		e.mu.Lock()
		pos := e.clock.Now()
		last := e.last
		e.last = pos
		e.mu.Unlock()

		if e.onPosition != nil {
			e.onPosition(pos)
		}

		events := e.collect(last, pos)
		for _, ev := range events {
			for _, res := range e.out.SendEvent(ev) {
				if res.Err != nil {
					debug.Log("engine", "send to %s failed: %v", res.Endpoint, res.Err)
				}
			}
		}
		debug.LogEvery(1000, "engine", "tick %d window %d events %d", pos.Ticks(), pos.Since(last).Ticks(), len(events))

		time.Sleep(loopSleep)
	}
}

// collect gathers the output events for the window [last, pos).
func (e *Engine) collect(last, pos tapestry.Position) []output.Event {
	if pos <= last {
		return nil
	}

	var events []output.Event

	e.projectMu.RLock()
	tm := e.project.TempoMap

	if tl := e.project.ActiveTimeline(); tl != nil && e.resolver != nil {
		for _, c := range tl.ContainersInRange(last, pos) {
			events = append(events, e.resolver.Resolve(c, last, pos, tm)...)
		}
	}

	for _, se := range e.sched.Events(last, pos) {
		events = append(events, se.Event)
	}

	if e.pulse.Load() {
		lastBeat := int(tm.PositionToBeats(last))
		nowBeat := int(tm.PositionToBeats(pos))
		for b := lastBeat; b < nowBeat; b++ {
			pitch := uint8(pulseBasePitch + e.pulseStep)
			e.pulseStep = (e.pulseStep + 1) % pulseSteps
			events = append(events,
				output.NewNoteOn(0, pitch, 100),
				output.NewNoteOff(0, pitch))
		}
	}
	e.projectMu.RUnlock()

	return events
}
