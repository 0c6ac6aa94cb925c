package commands

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"dspcc/internal/config"
	"dspcc/internal/dispatch"
	"dspcc/internal/metrics"
	"dspcc/internal/performer"
)

// renderCommand drives dispatch.Wrapper against a trivial passthrough
// performer for a fixed number of frames, printing the render-loop
// metrics it collects. It exists to give Core B a runnable entry point;
// real callers wire their own performer.Performer implementation.
func renderCommand(settings *config.Settings) *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Drive a passthrough demo performer through the render loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := prometheus.NewRegistry()
			m, err := metrics.NewDispatch(registry)
			if err != nil {
				return fmt.Errorf("registering metrics: %w", err)
			}

			p := newPassthroughPerformer()
			w, err := dispatch.NewWrapper(p, settings.MaxBlockSize, settings.FIFOCapacity, m)
			if err != nil {
				return fmt.Errorf("building dispatch wrapper: %w", err)
			}

			in := demoSineBlock(frames, 440)
			out := performer.AudioBuffer{make([]float32, frames)}
			p.outFrames = make([]float32, frames)

			if _, err := w.Render(
				dispatch.AudioBlock{Frames: frames, Channels: in},
				dispatch.AudioBlock{Frames: frames, Channels: out},
				performer.NewMIDIEventInputList(nil), nil,
			); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			fmt.Printf("rendered %d frames, totalFramesRendered=%d\n", frames, w.TotalFramesRendered())
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 1024, "number of frames to render through the demo performer")
	return cmd
}

// demoSineBlock synthesizes one mono channel of a sine wave at freqHz,
// sampled at 48kHz, for the CLI's own use (the CLI does not import
// internal/testutil/wavegen).
func demoSineBlock(frames int, freqHz float64) performer.AudioBuffer {
	const sampleRate = 48000.0
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freqHz * float64(i) / sampleRate))
	}
	return performer.AudioBuffer{samples}
}

// passthroughPerformer copies its single audio input endpoint straight to
// its single audio output endpoint, one endpoint of each role, no events.
type passthroughPerformer struct {
	in, out   performer.EndpointHandle
	lastInput []float32
	outFrames []float32
	prepared  int
}

func newPassthroughPerformer() *passthroughPerformer {
	return &passthroughPerformer{in: 0, out: 1}
}

func (p *passthroughPerformer) Endpoints() []performer.EndpointInfo {
	return []performer.EndpointInfo{
		{Handle: p.in, Name: "audioIn", Direction: performer.DirectionIn, Kind: performer.KindStream, Role: performer.RoleAudioIn, DataType: performer.DataFloatScalar, NumChannels: 1},
		{Handle: p.out, Name: "audioOut", Direction: performer.DirectionOut, Kind: performer.KindStream, Role: performer.RoleAudioOut, DataType: performer.DataFloatScalar, NumChannels: 1},
	}
}

func (p *passthroughPerformer) Prepare(n int) { p.prepared = n }
func (p *passthroughPerformer) Advance() {
	n := p.prepared
	if len(p.lastInput) < n {
		n = len(p.lastInput)
	}
	copy(p.outFrames[:n], p.lastInput[:n])
}

func (p *passthroughPerformer) SetNextInputStreamFrames(ep performer.EndpointHandle, value any) {
	if ep == p.in {
		if frames, ok := value.([]float32); ok {
			p.lastInput = frames
		}
	}
}
func (p *passthroughPerformer) SetSparseInputStreamTarget(performer.EndpointHandle, float32, int32) {}
func (p *passthroughPerformer) AddInputEvent(performer.EndpointHandle, any)                         {}
func (p *passthroughPerformer) SetInputValue(performer.EndpointHandle, any)                         {}

func (p *passthroughPerformer) GetOutputStreamFrames(ep performer.EndpointHandle) performer.AudioBuffer {
	if ep == p.out {
		return performer.AudioBuffer{p.outFrames}
	}
	return nil
}
func (p *passthroughPerformer) IterateOutputEvents(performer.EndpointHandle, performer.OutputEventCallback) {
}
