package controller

import (
	"fmt"
	"sync"

	"loom/debug"
	"loom/engine"
	"loom/model"
	"loom/output"
	"loom/tapestry"
)

// commandBuffer is the inbound command channel depth.
const commandBuffer = 256

// Controller owns the project and serializes all mutation through a
// single command loop. The playback engine shares the project through the
// controller's read-write lock; observers see outcomes as events and read
// state through snapshots.
type Controller struct {
	commands chan Command
	events   *hub

	projectMu sync.RWMutex
	project   *model.Project

	engine *engine.Engine
	out    *output.System
}

// New creates a controller with a fresh project and a playback engine
// wired to the given output system.
func New(projectName string, out *output.System) *Controller {
	c := &Controller{
		commands: make(chan Command, commandBuffer),
		events:   newHub(),
		project:  model.NewProject(projectName),
		out:      out,
	}
	c.engine = engine.NewEngine(c.project, &c.projectMu, out)
	c.engine.SetOnPosition(func(pos tapestry.Position) {
		c.events.Publish(PlaybackPositionChanged{Position: pos})
	})
	return c
}

// Engine returns the playback engine for direct configuration (resolver,
// beat pulse). Transport still goes through commands.
func (c *Controller) Engine() *engine.Engine {
	return c.engine
}

// Send queues a command for the control loop. Blocks only if the command
// buffer is full.
func (c *Controller) Send(cmd Command) {
	c.commands <- cmd
}

// Subscribe registers an observer. The returned channel receives events
// until Unsubscribe or shutdown.
func (c *Controller) Subscribe() (<-chan Event, int) {
	return c.events.Subscribe()
}

// Unsubscribe removes an observer and closes its channel.
func (c *Controller) Unsubscribe(id int) {
	c.events.Unsubscribe(id)
}

// Run processes commands until Shutdown arrives or the command channel is
// closed. It blocks; callers run it on its own goroutine.
func (c *Controller) Run() {
	for cmd := range c.commands {
		if _, ok := cmd.(Shutdown); ok {
			break
		}
		c.handle(cmd)
	}
	c.engine.Stop()
	c.events.Close()
	debug.Log("controller", "control loop exited")
}

// fail publishes a command failure to observers.
func (c *Controller) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	debug.Log("controller", "command failed: %s", msg)
	c.events.Publish(Error{Message: msg})
}

func (c *Controller) handle(cmd Command) {
	switch cmd := cmd.(type) {
	case CreateProject:
		c.handleCreateProject(cmd)
	case OpenProject:
		c.fail("open project: persistence not implemented")
	case SaveProject:
		c.fail("save project: persistence not implemented")

	case AddTrack:
		c.handleAddTrack(cmd)
	case RemoveTrack:
		c.handleRemoveTrack(cmd)
	case RenameTrack:
		c.handleRenameTrack(cmd)
	case SetTrackOutput:
		c.handleSetTrackOutput(cmd)
	case MuteTrack:
		c.handleMuteTrack(cmd)
	case SoloTrack:
		c.handleSoloTrack(cmd)

	case AddContainer:
		c.handleAddContainer(cmd)
	case RemoveContainer:
		c.handleRemoveContainer(cmd)
	case MoveContainer:
		c.handleMoveContainer(cmd)
	case ResizeContainer:
		c.handleResizeContainer(cmd)
	case SetContainerLoop:
		c.handleSetContainerLoop(cmd)
	case SetContainerTimeScale:
		c.handleSetContainerTimeScale(cmd)

	case SetTempo:
		c.handleSetTempo(cmd)
	case SetTimeSignature:
		c.handleSetTimeSignature(cmd)

	case Play:
		c.engine.Play()
		c.events.Publish(PlaybackStarted{})
	case Stop:
		c.engine.Stop()
		c.events.Publish(PlaybackStopped{})
	case Pause:
		c.engine.Pause()
		c.events.Publish(PlaybackPaused{})
	case Seek:
		c.engine.Seek(cmd.Position)
		c.events.Publish(PlaybackPositionChanged{Position: cmd.Position})
	case Record:
		c.fail("record: not implemented")

	case ScanOutputs:
		ports := c.out.ScanMidiOutputs()
		c.events.Publish(OutputsScanned{Ports: ports})
	case AddOutput:
		c.handleAddOutput(cmd)
	case ConnectOutput:
		if err := c.out.Connect(cmd.OutputID); err != nil {
			c.events.Publish(OutputError{OutputID: cmd.OutputID, Message: err.Error()})
			return
		}
		c.events.Publish(OutputConnected{OutputID: cmd.OutputID})
	case DisconnectOutput:
		c.out.Disconnect(cmd.OutputID)
		c.events.Publish(OutputDisconnected{OutputID: cmd.OutputID})

	case SetClockSource:
		if err := c.engine.SetClockKind(cmd.Kind); err != nil {
			c.fail("set clock source: %v", err)
			return
		}
		c.events.Publish(ClockSourceChanged{Kind: cmd.Kind})

	default:
		c.fail("unknown command %T", cmd)
	}
}

func (c *Controller) handleCreateProject(cmd CreateProject) {
	c.engine.Stop()

	c.projectMu.Lock()
	c.project = model.NewProject(cmd.Name)
	c.engine.SetProject(c.project)
	id := c.project.ID
	c.projectMu.Unlock()

	c.events.Publish(ProjectCreated{ProjectID: id})
}

// activeTimeline returns the active timeline. Caller holds projectMu.
func (c *Controller) activeTimeline() *model.Timeline {
	return c.project.ActiveTimeline()
}

func (c *Controller) handleAddTrack(cmd AddTrack) {
	c.projectMu.Lock()
	tl := c.activeTimeline()
	if tl == nil {
		c.projectMu.Unlock()
		c.fail("add track: no active timeline")
		return
	}
	track := model.NewTrack(cmd.Name, cmd.Type)
	tl.AddTrack(track)
	c.project.Version++
	c.projectMu.Unlock()

	c.events.Publish(TrackAdded{TrackID: track.ID, Type: track.Type})
}

func (c *Controller) handleRemoveTrack(cmd RemoveTrack) {
	c.projectMu.Lock()
	tl := c.activeTimeline()
	removed := tl != nil && tl.RemoveTrack(cmd.TrackID)
	if removed {
		c.project.Version++
	}
	c.projectMu.Unlock()

	if !removed {
		c.fail("remove track: %s not found", cmd.TrackID)
		return
	}
	c.events.Publish(TrackRemoved{TrackID: cmd.TrackID})
}

func (c *Controller) handleRenameTrack(cmd RenameTrack) {
	c.projectMu.Lock()
	track := c.findTrack(cmd.TrackID)
	if track != nil {
		track.Name = cmd.Name
		c.project.Version++
	}
	c.projectMu.Unlock()

	if track == nil {
		c.fail("rename track: %s not found", cmd.TrackID)
		return
	}
	c.events.Publish(TrackRenamed{TrackID: cmd.TrackID, Name: cmd.Name})
}

func (c *Controller) handleSetTrackOutput(cmd SetTrackOutput) {
	c.projectMu.Lock()
	track := c.findTrack(cmd.TrackID)
	if track != nil {
		track.OutputID = cmd.OutputID
		c.project.Version++
	}
	c.projectMu.Unlock()

	if track == nil {
		c.fail("set track output: %s not found", cmd.TrackID)
		return
	}
	c.events.Publish(TrackOutputChanged{TrackID: cmd.TrackID, OutputID: cmd.OutputID})
}

func (c *Controller) handleMuteTrack(cmd MuteTrack) {
	c.projectMu.Lock()
	track := c.findTrack(cmd.TrackID)
	if track != nil {
		track.Muted = cmd.Muted
		c.project.Version++
	}
	c.projectMu.Unlock()

	if track == nil {
		c.fail("mute track: %s not found", cmd.TrackID)
		return
	}
	c.events.Publish(TrackMuteChanged{TrackID: cmd.TrackID, Muted: cmd.Muted})
}

func (c *Controller) handleSoloTrack(cmd SoloTrack) {
	c.projectMu.Lock()
	track := c.findTrack(cmd.TrackID)
	if track != nil {
		track.Solo = cmd.Solo
		c.project.Version++
	}
	c.projectMu.Unlock()

	if track == nil {
		c.fail("solo track: %s not found", cmd.TrackID)
		return
	}
	c.events.Publish(TrackSoloChanged{TrackID: cmd.TrackID, Solo: cmd.Solo})
}

// findTrack looks a track up on the active timeline. Caller holds
// projectMu.
func (c *Controller) findTrack(id model.TrackID) *model.Track {
	tl := c.activeTimeline()
	if tl == nil {
		return nil
	}
	return tl.Track(id)
}

// findContainer looks a container up on the active timeline. Caller holds
// projectMu.
func (c *Controller) findContainer(id model.ContainerID) *model.MediaContainer {
	tl := c.activeTimeline()
	if tl == nil {
		return nil
	}
	return tl.Container(id)
}

func (c *Controller) handleAddContainer(cmd AddContainer) {
	c.projectMu.Lock()
	tl := c.activeTimeline()
	if tl == nil {
		c.projectMu.Unlock()
		c.fail("add container: no active timeline")
		return
	}
	container := model.NewMediaContainer(cmd.Position, cmd.Content)
	if !tl.AddContainer(cmd.TrackID, container) {
		c.projectMu.Unlock()
		c.fail("add container: track %s not found", cmd.TrackID)
		return
	}
	c.project.Version++
	c.projectMu.Unlock()

	c.events.Publish(ContainerAdded{ContainerID: container.ID, TrackID: cmd.TrackID})
}

func (c *Controller) handleRemoveContainer(cmd RemoveContainer) {
	c.projectMu.Lock()
	tl := c.activeTimeline()
	removed := tl != nil && tl.RemoveContainer(cmd.ContainerID)
	if removed {
		c.project.Version++
	}
	c.projectMu.Unlock()

	if !removed {
		c.fail("remove container: %s not found", cmd.ContainerID)
		return
	}
	c.events.Publish(ContainerRemoved{ContainerID: cmd.ContainerID})
}

func (c *Controller) handleMoveContainer(cmd MoveContainer) {
	c.projectMu.Lock()
	tl := c.activeTimeline()
	moved := tl != nil && tl.MoveContainer(cmd.ContainerID, cmd.NewPosition)
	if moved {
		c.project.Version++
	}
	c.projectMu.Unlock()

	if !moved {
		c.fail("move container: %s not found", cmd.ContainerID)
		return
	}
	c.events.Publish(ContainerMoved{ContainerID: cmd.ContainerID, Position: cmd.NewPosition})
}

func (c *Controller) handleResizeContainer(cmd ResizeContainer) {
	c.projectMu.Lock()
	container := c.findContainer(cmd.ContainerID)
	if container != nil {
		container.Length = cmd.NewLength
		c.project.Version++
	}
	c.projectMu.Unlock()

	if container == nil {
		c.fail("resize container: %s not found", cmd.ContainerID)
		return
	}
	c.events.Publish(ContainerResized{ContainerID: cmd.ContainerID, Length: cmd.NewLength})
}

func (c *Controller) handleSetContainerLoop(cmd SetContainerLoop) {
	c.projectMu.Lock()
	container := c.findContainer(cmd.ContainerID)
	if container != nil {
		container.WithLoop(cmd.LoopCount)
		c.project.Version++
	}
	c.projectMu.Unlock()

	if container == nil {
		c.fail("set container loop: %s not found", cmd.ContainerID)
		return
	}
	c.events.Publish(ContainerLoopChanged{ContainerID: cmd.ContainerID, LoopCount: cmd.LoopCount})
}

func (c *Controller) handleSetContainerTimeScale(cmd SetContainerTimeScale) {
	if cmd.TimeScale <= 0 {
		c.fail("set container time scale: scale must be positive, got %g", cmd.TimeScale)
		return
	}

	c.projectMu.Lock()
	container := c.findContainer(cmd.ContainerID)
	if container != nil {
		container.TimeScale = cmd.TimeScale
		c.project.Version++
	}
	c.projectMu.Unlock()

	if container == nil {
		c.fail("set container time scale: %s not found", cmd.ContainerID)
		return
	}
	c.events.Publish(ContainerTimeScaleChanged{ContainerID: cmd.ContainerID, TimeScale: cmd.TimeScale})
}

func (c *Controller) handleSetTempo(cmd SetTempo) {
	if cmd.Tempo.BPM <= 0 {
		c.fail("set tempo: BPM must be positive, got %g", cmd.Tempo.BPM)
		return
	}

	c.projectMu.Lock()
	c.project.TempoMap.SetTempo(cmd.Position, cmd.Tempo)
	c.project.Version++
	c.projectMu.Unlock()

	c.events.Publish(TempoChanged{Position: cmd.Position, Tempo: cmd.Tempo})
}

func (c *Controller) handleSetTimeSignature(cmd SetTimeSignature) {
	if cmd.Signature.Numerator == 0 || cmd.Signature.Denominator == 0 {
		c.fail("set time signature: numerator and denominator must be positive")
		return
	}

	c.projectMu.Lock()
	c.project.TempoMap.SetTimeSignature(cmd.Position, cmd.Signature)
	c.project.Version++
	c.projectMu.Unlock()

	c.events.Publish(TimeSignatureChanged{Position: cmd.Position, Signature: cmd.Signature})
}

func (c *Controller) handleAddOutput(cmd AddOutput) {
	if err := c.out.AddEndpoint(cmd.Config); err != nil {
		c.fail("add output: %v", err)
		return
	}

	c.projectMu.Lock()
	c.project.AddEndpoint(cmd.Config)
	c.projectMu.Unlock()

	c.events.Publish(OutputAdded{OutputID: cmd.Config.ID})
}

// Snapshot copies the current project state for a reader.
func (c *Controller) Snapshot() ProjectSnapshot {
	c.projectMu.RLock()
	defer c.projectMu.RUnlock()

	pos := c.engine.Position()
	snap := ProjectSnapshot{
		ID:        c.project.ID,
		Name:      c.project.Name,
		Version:   c.project.Version,
		Tempo:     c.project.TempoMap.TempoAt(pos),
		Signature: c.project.TempoMap.TimeSignatureAt(pos),
		Playing:   c.engine.IsPlaying(),
		Position:  pos,
	}
	snap.Bar, snap.Beat = c.project.TempoMap.PositionToBarsBeats(pos)

	if tl := c.project.ActiveTimeline(); tl != nil {
		t := snapshotTimeline(tl)
		snap.Timeline = &t
	}

	for id, cfg := range c.project.Endpoints {
		snap.Endpoints = append(snap.Endpoints, EndpointSnapshot{
			ID:        id,
			Name:      cfg.Name,
			Type:      cfg.Type,
			DeviceID:  cfg.DeviceID,
			Enabled:   cfg.Enabled,
			Connected: c.out.IsConnected(id),
		})
	}
	return snap
}
