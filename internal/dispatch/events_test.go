package dispatch

import (
	"testing"

	"dspcc/internal/fifo"
	"dspcc/internal/performer"
)

func TestEventOutputs_PostOutputEventsTagsEndpointAndAbsoluteTime(t *testing.T) {
	fp := newFakePerformer(nil)
	fp.outputEvents[epAudioOut] = []fakeOutputEvent{
		{frameOffset: 10, value: "clip"},
		{frameOffset: 20, value: "clip2"},
	}

	q := fifo.NewQueue(8)
	eo := NewEventOutputs([]performer.EndpointHandle{epAudioOut}, q)

	if ok := eo.PostOutputEvents(fp, 100); !ok {
		t.Fatal("expected PostOutputEvents to succeed with room in the queue")
	}

	first, ok := q.PopFront()
	if !ok || first.Endpoint != epAudioOut || first.Time != 110 || first.Value != "clip" {
		t.Fatalf("unexpected first entry %+v ok=%v", first, ok)
	}
	second, ok := q.PopFront()
	if !ok || second.Time != 120 || second.Value != "clip2" {
		t.Fatalf("unexpected second entry %+v ok=%v", second, ok)
	}
}

func TestEventOutputs_PostOutputEventsReportsOverflow(t *testing.T) {
	fp := newFakePerformer(nil)
	fp.outputEvents[epAudioOut] = []fakeOutputEvent{
		{frameOffset: 0, value: 1},
		{frameOffset: 1, value: 2},
	}

	q := fifo.NewQueue(1)
	eo := NewEventOutputs([]performer.EndpointHandle{epAudioOut}, q)

	if ok := eo.PostOutputEvents(fp, 0); ok {
		t.Fatal("expected PostOutputEvents to report false when the queue overflows")
	}
}

func TestEventOutputs_DeliverPendingEventsResolvesNamesInFIFOOrder(t *testing.T) {
	q := fifo.NewQueue(4)
	q.Push(fifo.Entry{Endpoint: epAudioOut, Time: 5, Value: "a"})
	q.Push(fifo.Entry{Endpoint: epParam, Time: 6, Value: "b"})

	eo := NewEventOutputs(nil, q)
	names := map[performer.EndpointHandle]string{epAudioOut: "audioOut", epParam: "gain"}

	var got []OutputEventEnvelope
	eo.DeliverPendingEvents(func(h performer.EndpointHandle) string { return names[h] }, func(e OutputEventEnvelope) {
		got = append(got, e)
	})

	if len(got) != 2 || got[0].EndpointName != "audioOut" || got[1].EndpointName != "gain" {
		t.Fatalf("unexpected delivered envelopes %+v", got)
	}
}
