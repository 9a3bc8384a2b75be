package model

import (
	"github.com/google/uuid"

	"loom/tapestry"
)

// ContainerID identifies a media container.
type ContainerID uuid.UUID

// NewContainerID creates a fresh container identity.
func NewContainerID() ContainerID {
	return ContainerID(uuid.New())
}

func (id ContainerID) String() string {
	return uuid.UUID(id).String()
}

// PatternID identifies a tracker-style pattern, resolved externally.
type PatternID uuid.UUID

// NewPatternID creates a fresh pattern identity.
func NewPatternID() PatternID {
	return PatternID(uuid.New())
}

// MidiClipID identifies a MIDI clip, resolved externally.
type MidiClipID uuid.UUID

// NewMidiClipID creates a fresh MIDI clip identity.
func NewMidiClipID() MidiClipID {
	return MidiClipID(uuid.New())
}

// AudioFileID identifies an audio file, resolved externally.
type AudioFileID uuid.UUID

// NewAudioFileID creates a fresh audio file identity.
func NewAudioFileID() AudioFileID {
	return AudioFileID(uuid.New())
}

// PlaybackMode controls how a container's content plays back.
type PlaybackMode int

const (
	// PlaybackNormal plays once at normal length.
	PlaybackNormal PlaybackMode = iota
	// PlaybackLoop repeats until the container length is reached.
	PlaybackLoop
	// PlaybackOneShot plays once regardless of container length.
	PlaybackOneShot
	// PlaybackPingPong alternates forward and backward playback.
	PlaybackPingPong
)

// ContentKind tags the kind of content a container references.
type ContentKind int

const (
	ContentPattern ContentKind = iota
	ContentMidiClip
	ContentAudioFile
)

// MediaContent is a reference to externally stored content. The referenced
// entity is a foreign object: only its identity lives here.
type MediaContent struct {
	Kind ContentKind
	Ref  uuid.UUID
}

// PatternContent references a pattern.
func PatternContent(id PatternID) MediaContent {
	return MediaContent{Kind: ContentPattern, Ref: uuid.UUID(id)}
}

// MidiClipContent references a MIDI clip.
func MidiClipContent(id MidiClipID) MediaContent {
	return MediaContent{Kind: ContentMidiClip, Ref: uuid.UUID(id)}
}

// AudioFileContent references an audio file.
func AudioFileContent(id AudioFileID) MediaContent {
	return MediaContent{Kind: ContentAudioFile, Ref: uuid.UUID(id)}
}

// MediaContainer is a time-positioned placement of content on a track.
// A container is owned by exactly one Timeline.
type MediaContainer struct {
	ID       ContainerID
	Position tapestry.Position
	Length   tapestry.Duration // timeline length, may differ from the content's own
	Mode     PlaybackMode
	// LoopCount limits looping; nil means loop freely within the
	// container length.
	LoopCount   *uint32
	StartOffset tapestry.Duration // crop from the start of the content
	EndOffset   tapestry.Duration // crop from the end of the content
	TimeScale   float64           // playback speed, 1.0 = normal
	Content     MediaContent
}

// NewMediaContainer creates a container at the given position with a
// default four-beat length.
func NewMediaContainer(pos tapestry.Position, content MediaContent) *MediaContainer {
	return &MediaContainer{
		ID:        NewContainerID(),
		Position:  pos,
		Length:    tapestry.DurationFromBeats(4.0),
		Mode:      PlaybackNormal,
		TimeScale: 1.0,
		Content:   content,
	}
}

// End returns the container's end position on the timeline.
func (c *MediaContainer) End() tapestry.Position {
	return c.Position.Add(c.Length)
}

// WithLength sets the timeline length.
func (c *MediaContainer) WithLength(length tapestry.Duration) *MediaContainer {
	c.Length = length
	return c
}

// WithLoop switches the container to loop mode with an optional repeat
// limit.
func (c *MediaContainer) WithLoop(count *uint32) *MediaContainer {
	c.Mode = PlaybackLoop
	c.LoopCount = count
	return c
}

// WithCrop sets the start and end crop offsets.
func (c *MediaContainer) WithCrop(start, end tapestry.Duration) *MediaContainer {
	c.StartOffset = start
	c.EndOffset = end
	return c
}

// WithTimeScale sets the playback speed factor.
func (c *MediaContainer) WithTimeScale(scale float64) *MediaContainer {
	c.TimeScale = scale
	return c
}
