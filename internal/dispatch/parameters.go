// Package dispatch implements Core B: the realtime render loop that merges
// audio, MIDI, parameter, and timeline inputs through a single
// time-ordered FIFO and demultiplexes the performer's outputs back to the
// caller (spec §2 "Core B components").
package dispatch

import (
	"dspcc/internal/fifo"
	"dspcc/internal/performer"
)

// ParameterEntry is the caller-facing state of one bound parameter (spec
// §3.2 "Parameter entry"). RampFrames > 0 requests a smoothed transition
// when the endpoint is a stream rather than a value/event.
type ParameterEntry struct {
	Endpoint   performer.EndpointHandle
	Value      float32
	RampFrames uint32
}

// Parameters is the Parameter State List with its Dirty Set (spec §4.B.2).
// The dirty set is a []bool indexed by parameter index plus a stack of
// dirty indices, giving O(1) mark and O(k) drain without a map (spec §9
// "Dirty list"; SPEC_FULL.md §5: mirrors the teacher's preference for
// slice-backed hot-path state over maps).
type Parameters struct {
	entries []ParameterEntry
	dirty   []bool
	stack   []int
}

// NewParameters builds a Parameters list bound 1:1 to the given parameter
// endpoints, in the order the binding tables enumerated them.
func NewParameters(endpoints []performer.EndpointHandle) *Parameters {
	return &Parameters{
		entries: make([]ParameterEntry, len(endpoints)),
		dirty:   make([]bool, len(endpoints)),
	}
}

// Bind associates parameter index i with an endpoint and its ramp length.
// Called once during binding initialisation.
func (p *Parameters) Bind(i int, endpoint performer.EndpointHandle, rampFrames uint32) {
	p.entries[i].Endpoint = endpoint
	p.entries[i].RampFrames = rampFrames
}

// SetParameter updates parameter i's current value and marks it dirty, but
// only if the new value differs from the current one (spec §4.B.2,
// invariant 7: "a parameter set to the same value twice does not produce a
// second event").
func (p *Parameters) SetParameter(i int, v float32) {
	if p.entries[i].Value == v {
		return
	}
	p.entries[i].Value = v
	p.markDirty(i)
}

// MarkAsChanged marks parameter i dirty unconditionally, even if its value
// has not changed (spec §4.B.2).
func (p *Parameters) MarkAsChanged(i int) {
	p.markDirty(i)
}

func (p *Parameters) markDirty(i int) {
	if p.dirty[i] {
		return
	}
	p.dirty[i] = true
	p.stack = append(p.stack, i)
}

// Flush drains every dirty parameter, pushing one input-data entry per
// parameter into q at time t (spec §4.B.2). A zero RampFrames produces a
// plain float32 value; a non-zero RampFrames produces a
// performer.RampHolder carrying the ramp length and the target. The dirty
// set is empty once Flush returns.
func (p *Parameters) Flush(q *fifo.Queue, t uint64) {
	for _, i := range p.stack {
		p.dirty[i] = false
		e := p.entries[i]

		var value any
		if e.RampFrames == 0 {
			value = e.Value
		} else {
			value = performer.RampHolder{RampFrames: int32(e.RampFrames), Target: e.Value}
		}
		q.Push(fifo.Entry{Endpoint: e.Endpoint, Time: t, Value: value})
	}
	p.stack = p.stack[:0]
}

// DeliverValueToEndpoint dispatches one FIFO value to the performer
// according to the endpoint's declared kind (spec §4.B.5
// "deliverValueToEndpoint"). Stream endpoints route ramp-holder values
// through SetSparseInputStreamTarget and everything else through
// SetNextInputStreamFrames (spec §4.B.2 "setSparseValueIfRampedParameterChange"
// recognizes _RampHolder by its class name — here, by its Go type).
func DeliverValueToEndpoint(p performer.Performer, kind performer.Kind, ep performer.EndpointHandle, value any) {
	switch kind {
	case performer.KindStream:
		if ramp, ok := value.(performer.RampHolder); ok {
			p.SetSparseInputStreamTarget(ep, ramp.Target, ramp.RampFrames)
			return
		}
		p.SetNextInputStreamFrames(ep, value)
	case performer.KindEvent:
		p.AddInputEvent(ep, value)
	case performer.KindValue:
		p.SetInputValue(ep, value)
	}
}
