package dispatch

import (
	"dspcc/internal/fifo"
	"dspcc/internal/performer"
)

// EventOutputs is the Event Output Aggregator (spec §4.B.4): it drains
// per-block outgoing events from each event-output endpoint of the
// performer into an internal multi-endpoint FIFO for asynchronous host
// consumption.
type EventOutputs struct {
	endpoints []performer.EndpointHandle
	out       *fifo.Queue
}

// NewEventOutputs returns an aggregator draining the given event-output
// endpoints into out.
func NewEventOutputs(endpoints []performer.EndpointHandle, out *fifo.Queue) *EventOutputs {
	return &EventOutputs{endpoints: endpoints, out: out}
}

// PostOutputEvents drains every event-output endpoint's pending events for
// the block that just ended, tagging each with (endpoint, absoluteTime =
// time + frameOffset, value). Returns false iff any enqueue failed because
// the FIFO was full (spec §4.B.4, §7 "FIFO overflow").
func (eo *EventOutputs) PostOutputEvents(p performer.Performer, time uint64) bool {
	ok := true
	for _, ep := range eo.endpoints {
		p.IterateOutputEvents(ep, func(frameOffset uint32, value any) {
			if !eo.out.Push(fifo.Entry{Endpoint: ep, Time: time + uint64(frameOffset), Value: value}) {
				ok = false
			}
		})
	}
	return ok
}

// OutputEventEnvelope is one delivered output event, with its endpoint
// resolved to a declared name (spec §4.B.4: "deliverPendingEvents... drains
// that FIFO asynchronously to the host, resolving each endpoint handle to
// its declared name").
type OutputEventEnvelope struct {
	EndpointName string
	Time         uint64
	Value        any
}

// DeliverPendingEvents drains the internal output FIFO, resolving each
// entry's endpoint handle through resolveName and invoking cb for every
// entry. It is safe to call from a thread other than the render thread
// (spec §5: "A separate thread may call deliverPendingEvents").
func (eo *EventOutputs) DeliverPendingEvents(resolveName func(performer.EndpointHandle) string, cb func(OutputEventEnvelope)) {
	for {
		e, ok := eo.out.PopFront()
		if !ok {
			return
		}
		cb(OutputEventEnvelope{EndpointName: resolveName(e.Endpoint), Time: e.Time, Value: e.Value})
	}
}
