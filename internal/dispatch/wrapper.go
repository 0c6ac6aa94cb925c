package dispatch

import (
	"dspcc/internal/errors"
	"dspcc/internal/fifo"
	"dspcc/internal/metrics"
	"dspcc/internal/performer"
)

// AudioBlock is the caller-provided interleaved view of one render call's
// audio input or output, channel-major (spec §6).
type AudioBlock struct {
	Frames   int
	Channels performer.AudioBuffer
}

// Wrapper drives a performer.Performer block-by-block, merging inputs
// through a single input fifo.Queue and demultiplexing outputs (spec
// §4.B.5 "Render Loop"). NewWrapper preallocates its queues and the
// binding tables' scratch buffers. Render is not allocation-free: storing
// audio buffers and parameter values in a fifo.Entry's any field can
// allocate, and calls delegated to RenderInChunks allocate per sub-render.
type Wrapper struct {
	performer performer.Performer
	bindings  *performer.BindingTables
	endpointKind map[performer.EndpointHandle]performer.Kind

	maxBlockSize int
	input        *fifo.Queue
	output       *fifo.Queue

	parameters *Parameters
	timeline   *Timeline
	events     *EventOutputs

	totalFramesRendered uint64

	m *metrics.Dispatch
}

// NewWrapper builds a Wrapper bound to p, enumerating and classifying its
// endpoints via performer.Build (spec §4.B.1). maxBlockSize bounds every
// sub-render and must be non-zero. fifoCapacity bounds the input and
// output queues.
func NewWrapper(p performer.Performer, maxBlockSize, fifoCapacity int, m *metrics.Dispatch) (*Wrapper, error) {
	if maxBlockSize <= 0 {
		return nil, errors.NewConfigError("maxBlockSize must be non-zero")
	}
	bindings, err := performer.Build(p, maxBlockSize)
	if err != nil {
		return nil, err
	}

	kindByEndpoint := make(map[performer.EndpointHandle]performer.Kind)
	for _, ep := range p.Endpoints() {
		kindByEndpoint[ep.Handle] = ep.Kind
	}

	params := NewParameters(bindings.Parameters)
	for i, ep := range bindings.Parameters {
		params.Bind(i, ep, 0)
	}

	var timelineEndpoint performer.EndpointHandle
	bound := len(bindings.Timeline) > 0
	if bound {
		timelineEndpoint = bindings.Timeline[0]
	}

	output := fifo.NewQueue(fifoCapacity)

	w := &Wrapper{
		performer:    p,
		bindings:     bindings,
		endpointKind: kindByEndpoint,
		maxBlockSize: maxBlockSize,
		input:        fifo.NewQueue(fifoCapacity),
		output:       output,
		parameters:   params,
		timeline:     NewTimeline(timelineEndpoint, bound),
		events:       NewEventOutputs(bindings.EventOutputs, output),
		m:            m,
	}
	return w, nil
}

// SetParameterRamp configures parameter i's ramp length, read by the
// Parameter State List on the next Flush (spec §3.2 "Parameter entry").
func (w *Wrapper) SetParameterRamp(i int, rampFrames uint32) {
	w.parameters.Bind(i, w.bindings.Parameters[i], rampFrames)
}

// SetParameter forwards to the bound Parameters list (spec §4.B.2).
func (w *Wrapper) SetParameter(i int, v float32) { w.parameters.SetParameter(i, v) }

// MarkParameterChanged forwards to the bound Parameters list.
func (w *Wrapper) MarkParameterChanged(i int) { w.parameters.MarkAsChanged(i) }

// Timeline exposes the bound Timeline Event Sender (spec §4.B.3).
func (w *Wrapper) Timeline() *Timeline { return w.timeline }

// TotalFramesRendered returns the monotonically increasing frame counter
// (spec §3.2).
func (w *Wrapper) TotalFramesRendered() uint64 { return w.totalFramesRendered }

// DeliverPendingEvents drains the output FIFO on behalf of a non-render
// thread (spec §5, §4.B.4).
func (w *Wrapper) DeliverPendingEvents(resolveName func(performer.EndpointHandle) string, cb func(OutputEventEnvelope)) {
	w.events.DeliverPendingEvents(resolveName, cb)
}

// Render drives the performer through input's frames, writing results into
// output (spec §4.B.5). If numFrames exceeds maxInternalBlockSize it
// delegates to RenderInChunks (spec §4.B.6). The caller's midiIn is not
// modified; the returned window holds the events not yet delivered.
func (w *Wrapper) Render(input, output AudioBlock, midiIn performer.MIDIEventInputList, midiOut func(performer.MIDIEvent)) (performer.MIDIEventInputList, error) {
	numFrames := output.Frames
	if numFrames > performer.InternalMaxBlockSize() {
		return w.RenderInChunks(input, output, midiIn, midiOut)
	}
	if input.Frames != numFrames {
		return midiIn, errors.NewConfigError("input.Frames must equal output.Frames")
	}
	if w.maxBlockSize == 0 {
		return midiIn, errors.NewConfigError("maxBlockSize must be non-zero")
	}

	w.enqueueAudioInputs(input)
	remaining := w.enqueueMIDIInputs(midiIn)
	w.parameters.Flush(w.input, w.totalFramesRendered)
	w.timeline.Flush(w.input, w.totalFramesRendered)

	framesDone := 0
	w.input.IterateChunks(
		w.totalFramesRendered, numFrames, w.maxBlockSize,
		func(n int) {
			w.performer.Prepare(n)
		},
		func(e fifo.Entry) {
			DeliverValueToEndpoint(w.performer, w.endpointKind[e.Endpoint], e.Endpoint, e.Value)
		},
		func(n int) {
			w.performer.Advance()
			w.copyAudioOutputs(output, framesDone, n)
			w.drainMIDIOutputs(midiOut)
			if !w.events.PostOutputEvents(w.performer, w.totalFramesRendered+uint64(framesDone)) {
				if w.m != nil {
					w.m.EventOverflows.Inc()
				}
			}
			framesDone += n
			if w.m != nil {
				w.m.FramesRendered.Add(float64(n))
				w.m.ChunksRendered.Inc()
			}
		})

	w.totalFramesRendered += uint64(framesDone)
	return remaining, nil
}

// enqueueAudioInputs registers one FIFO entry per bound audio input
// endpoint, at the block's start time, carrying the whole input block as
// its value (spec §4.B.5: "audioInputs.enqueue(inputFIFO,
// totalFramesRendered, input)"). Multi-channel bindings copy into their
// preallocated Scratch buffer first (spec §4.B.1), so the value handed to
// the performer is always a stable, wrapper-owned view.
func (w *Wrapper) enqueueAudioInputs(input AudioBlock) {
	for i := range w.bindings.AudioInputs {
		b := &w.bindings.AudioInputs[i]
		var value any
		if b.NumChannels == 1 {
			value = input.Channels[b.StartChannelIndex]
		} else {
			for c := 0; c < b.NumChannels; c++ {
				src := input.Channels[b.StartChannelIndex+c]
				copy(b.Scratch[c][:len(src)], src)
			}
			value = b.Scratch
		}
		w.input.Push(fifo.Entry{Endpoint: b.Endpoint, Time: w.totalFramesRendered, Value: value})
	}
}

// enqueueMIDIInputs pushes every queued MIDI event (timestamped at its own
// intra-block frame offset, per spec §5 "except MIDI events which retain
// their per-event frameIndex") and returns the now-empty remaining window:
// a direct (non-chunked) Render call consumes its entire midiIn argument.
func (w *Wrapper) enqueueMIDIInputs(midiIn performer.MIDIEventInputList) performer.MIDIEventInputList {
	for _, ep := range w.bindings.MIDIInputs {
		for i := 0; i < midiIn.Len(); i++ {
			ev := midiIn.At(i)
			w.input.Push(fifo.Entry{
				Endpoint: ep,
				Time:     w.totalFramesRendered + uint64(ev.FrameIndex),
				Value:    ev.Message,
			})
		}
	}
	return performer.NewMIDIEventInputList(nil)
}

// copyAudioOutputs copies n frames of every bound audio output endpoint,
// starting at offset framesDone in output.
func (w *Wrapper) copyAudioOutputs(output AudioBlock, framesDone, n int) {
	for _, b := range w.bindings.AudioOutputs {
		buf := w.performer.GetOutputStreamFrames(b.Endpoint)
		for c := 0; c < b.NumChannels; c++ {
			dst := output.Channels[b.StartChannelIndex+c][framesDone : framesDone+n]
			copy(dst, buf[c][:n])
		}
	}
}

// drainMIDIOutputs forwards every pending output MIDI event to midiOut.
func (w *Wrapper) drainMIDIOutputs(midiOut func(performer.MIDIEvent)) {
	if midiOut == nil {
		return
	}
	for _, ep := range w.bindings.MIDIOutputs {
		w.performer.IterateOutputEvents(ep, func(frameOffset uint32, value any) {
			msg, ok := value.(performer.MIDIMessage)
			if !ok {
				return
			}
			midiOut(performer.MIDIEvent{FrameIndex: frameOffset, Message: msg})
		})
	}
}
