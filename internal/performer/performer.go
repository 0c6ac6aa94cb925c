// Package performer describes the opaque signal-processing engine Core B
// drives block-by-block (spec §3.2, §6 "Core B consumes").
package performer

// EndpointHandle addresses one performer port. It is opaque to callers; the
// binding tables are the only code that interprets it.
type EndpointHandle int

// Direction is an endpoint's data flow direction.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
)

// Kind is an endpoint's transport shape.
type Kind int

const (
	KindStream Kind = iota
	KindEvent
	KindValue
)

// Role is the declared purpose of an endpoint, used by the binding tables
// to classify it during prepare (spec §4.B.1).
type Role int

const (
	RoleAudioIn Role = iota
	RoleAudioOut
	RoleMIDIIn
	RoleMIDIOut
	RoleParameterIn
	RoleTimelineIn
	RoleEventOut
)

// DataType is the shape of values carried by an endpoint.
type DataType int

const (
	DataFloatScalar DataType = iota
	DataFloatVector
	DataMIDI
	DataStructured
)

// EndpointInfo is what the performer reports about one of its endpoints
// during enumeration (spec §4.B.1).
type EndpointInfo struct {
	Handle      EndpointHandle
	Name        string
	Direction   Direction
	Kind        Kind
	Role        Role
	DataType    DataType
	NumChannels int // vector width for DataFloatVector, 1 otherwise
}

// RampHolder is the tagged "_RampHolder" value from the source language
// (spec §3.2, §9 "Ramp holder tagging"): a request to move a stream
// endpoint's target over RampFrames frames rather than snapping to it.
type RampHolder struct {
	RampFrames int32
	Target     float32
}

// TimeSignature is a transport time-signature value (spec §3.2).
type TimeSignature struct {
	Numerator   int32
	Denominator int32
}

// Tempo is a transport tempo value (spec §3.2).
type Tempo struct {
	BPM float64
}

// TransportState is the playing/stopped/recording state (spec §3.2).
type TransportState int

const (
	TransportStopped TransportState = iota
	TransportPlaying
	TransportRecording
)

// Position is a transport position value (spec §3.2).
type Position struct {
	CurrentFrame             int64
	CurrentQuarterNote       float64
	LastBarStartQuarterNote  float64
}

// MIDIMessage carries a packed 24-bit MIDI payload (spec §6: "a single
// midiBytes int32 field").
type MIDIMessage struct {
	MidiBytes int32
}

// MIDIEvent is a MIDI message tagged with its frame offset inside a block.
type MIDIEvent struct {
	FrameIndex uint32
	Message    MIDIMessage
}

// MIDIEventInputList is a slice-backed window over pending input MIDI
// events, ported from original_source/soul_AudioMIDIWrapper.h's
// MIDIEventInputList (spec §6: SUPPLEMENTED FEATURES). It supports the
// chunking wrapper's destructive advance through the timeline
// (RemoveEventsBefore) without the caller ever copying the backing slice.
type MIDIEventInputList struct {
	events []MIDIEvent
}

// NewMIDIEventInputList wraps events (which must already be sorted by
// FrameIndex) in a MIDIEventInputList.
func NewMIDIEventInputList(events []MIDIEvent) MIDIEventInputList {
	return MIDIEventInputList{events: events}
}

// Len reports the number of events remaining in the window.
func (l MIDIEventInputList) Len() int { return len(l.events) }

// At returns the i'th remaining event.
func (l MIDIEventInputList) At(i int) MIDIEvent { return l.events[i] }

// RemoveEventsBefore returns the sub-window of events whose FrameIndex is
// >= frameIndex, discarding everything earlier (spec §4.B.6). This mutates
// nothing in place; it returns a narrowed view over the same backing
// array, matching the source's begin/end pointer semantics.
func (l MIDIEventInputList) RemoveEventsBefore(frameIndex uint32) MIDIEventInputList {
	i := 0
	for i < len(l.events) && l.events[i].FrameIndex < frameIndex {
		i++
	}
	return MIDIEventInputList{events: l.events[i:]}
}

// AudioBuffer is a channel-major view of audio frames: AudioBuffer[c][n] is
// sample n of channel c (spec §6: "2-D float array, channel-major per
// endpoint").
type AudioBuffer [][]float32

// OutputEventCallback receives one drained output event, tagged with its
// offset from the start of the current chunk.
type OutputEventCallback func(frameOffset uint32, value any)

// Performer is the contract Core B drives (spec §6 "Core B consumes").
// Implementations are expected to be realtime-safe: none of these methods
// may block or allocate once Prepare has returned for the current chunk.
type Performer interface {
	Endpoints() []EndpointInfo

	Prepare(numFrames int)
	Advance()

	SetNextInputStreamFrames(ep EndpointHandle, value any)
	SetSparseInputStreamTarget(ep EndpointHandle, target float32, rampFrames int32)
	AddInputEvent(ep EndpointHandle, value any)
	SetInputValue(ep EndpointHandle, value any)

	GetOutputStreamFrames(ep EndpointHandle) AudioBuffer
	IterateOutputEvents(ep EndpointHandle, cb OutputEventCallback)
}
