package dispatch

import (
	"testing"

	"dspcc/internal/fifo"
	"dspcc/internal/performer"
)

func TestParameters_FlushEmitsPlainFloatWithoutRamp(t *testing.T) {
	p := NewParameters([]performer.EndpointHandle{10})
	p.Bind(0, 10, 0)
	p.SetParameter(0, 0.25)

	q := fifo.NewQueue(4)
	p.Flush(q, 7)

	e, ok := q.PopFront()
	if !ok {
		t.Fatal("expected one flushed entry")
	}
	v, ok := e.Value.(float32)
	if !ok || v != 0.25 || e.Endpoint != 10 || e.Time != 7 {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestParameters_FlushEmitsRampHolderWhenBoundWithRampFrames(t *testing.T) {
	p := NewParameters([]performer.EndpointHandle{10})
	p.Bind(0, 10, 64)
	p.SetParameter(0, 0.9)

	q := fifo.NewQueue(4)
	p.Flush(q, 3)

	e, ok := q.PopFront()
	if !ok {
		t.Fatal("expected one flushed entry")
	}
	ramp, ok := e.Value.(performer.RampHolder)
	if !ok || ramp.RampFrames != 64 || ramp.Target != 0.9 {
		t.Fatalf("expected RampHolder{64, 0.9}, got %#v", e.Value)
	}
}

func TestParameters_FlushClearsTheDirtySet(t *testing.T) {
	p := NewParameters([]performer.EndpointHandle{10})
	p.Bind(0, 10, 0)
	p.SetParameter(0, 1)

	q := fifo.NewQueue(4)
	p.Flush(q, 0)
	p.Flush(q, 1)

	if _, ok := q.PopFront(); !ok {
		t.Fatal("expected the first flush to produce an entry")
	}
	if _, ok := q.PopFront(); ok {
		t.Fatal("expected the second flush to produce nothing: dirty set should already be empty")
	}
}

func TestParameters_MarkAsChangedReemitsUnchangedValue(t *testing.T) {
	p := NewParameters([]performer.EndpointHandle{10})
	p.Bind(0, 10, 0)
	p.SetParameter(0, 1)

	q := fifo.NewQueue(4)
	p.Flush(q, 0)
	q.PopFront()

	p.MarkAsChanged(0)
	p.Flush(q, 1)
	if _, ok := q.PopFront(); !ok {
		t.Fatal("expected MarkAsChanged to force a re-emit even though the value did not change")
	}
}

func TestDeliverValueToEndpoint_RoutesByKind(t *testing.T) {
	fp := newFakePerformer(nil)

	DeliverValueToEndpoint(fp, performer.KindStream, 1, float32(0.5))
	if v, ok := fp.streamValues[1].(float32); !ok || v != 0.5 {
		t.Fatalf("expected stream delivery, got %#v", fp.streamValues[1])
	}

	DeliverValueToEndpoint(fp, performer.KindStream, 2, performer.RampHolder{RampFrames: 8, Target: 1})
	if ramp, ok := fp.sparseTarget[2]; !ok || ramp.RampFrames != 8 || ramp.Target != 1 {
		t.Fatalf("expected a ramp-holder stream value to route through SetSparseInputStreamTarget, got %+v ok=%v", ramp, ok)
	}

	DeliverValueToEndpoint(fp, performer.KindEvent, 3, "midiEvent")
	if len(fp.inputEvents[3]) != 1 {
		t.Fatalf("expected one event delivered to endpoint 3")
	}

	DeliverValueToEndpoint(fp, performer.KindValue, 4, int32(42))
	if v, ok := fp.inputValues[4].(int32); !ok || v != 42 {
		t.Fatalf("expected a value delivery to endpoint 4, got %#v", fp.inputValues[4])
	}
}
