package dispatch

import (
	"dspcc/internal/fifo"
	"dspcc/internal/performer"
)

// Timeline is the Timeline Event Sender (spec §4.B.3): four independent
// pending flags, one each for time signature, tempo, transport state, and
// position. If an endpoint for a given kind was not discovered at
// initialisation, applying that kind is a no-op.
type Timeline struct {
	endpoint performer.EndpointHandle
	bound    bool

	timeSigPending   bool
	timeSig          performer.TimeSignature
	tempoPending     bool
	tempo            performer.Tempo
	transportPending bool
	transport        performer.TransportState
	positionPending  bool
	position         performer.Position
}

// NewTimeline returns a Timeline bound to the given timeline-input
// endpoint, or an unbound Timeline (all Apply* calls become no-ops) if
// bound is false.
func NewTimeline(endpoint performer.EndpointHandle, bound bool) *Timeline {
	return &Timeline{endpoint: endpoint, bound: bound}
}

// ApplyTimeSignature updates the cached time signature and marks it pending.
func (tl *Timeline) ApplyTimeSignature(v performer.TimeSignature) {
	if !tl.bound {
		return
	}
	tl.timeSig = v
	tl.timeSigPending = true
}

// ApplyTempo updates the cached tempo and marks it pending.
func (tl *Timeline) ApplyTempo(v performer.Tempo) {
	if !tl.bound {
		return
	}
	tl.tempo = v
	tl.tempoPending = true
}

// ApplyTransportState updates the cached transport state and marks it pending.
func (tl *Timeline) ApplyTransportState(v performer.TransportState) {
	if !tl.bound {
		return
	}
	tl.transport = v
	tl.transportPending = true
}

// ApplyPosition updates the cached position and marks it pending.
func (tl *Timeline) ApplyPosition(v performer.Position) {
	if !tl.bound {
		return
	}
	tl.position = v
	tl.positionPending = true
}

// Flush consumes and clears all set flags, pushing each pending value into
// q at time t (spec §4.B.3).
func (tl *Timeline) Flush(q *fifo.Queue, t uint64) {
	if !tl.bound {
		return
	}
	if tl.timeSigPending {
		tl.timeSigPending = false
		q.Push(fifo.Entry{Endpoint: tl.endpoint, Time: t, Value: tl.timeSig})
	}
	if tl.tempoPending {
		tl.tempoPending = false
		q.Push(fifo.Entry{Endpoint: tl.endpoint, Time: t, Value: tl.tempo})
	}
	if tl.transportPending {
		tl.transportPending = false
		q.Push(fifo.Entry{Endpoint: tl.endpoint, Time: t, Value: tl.transport})
	}
	if tl.positionPending {
		tl.positionPending = false
		q.Push(fifo.Entry{Endpoint: tl.endpoint, Time: t, Value: tl.position})
	}
}
