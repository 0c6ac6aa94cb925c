// Package metrics instruments Core B's render loop with Prometheus
// counters, following tphakala-birdnet-go's
// internal/observability/metrics package: a constructor taking a
// *prometheus.Registry and returning a struct of already-registered
// collectors (see that package's NewMyAudioMetrics).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dispatch holds the render-loop counters for one Wrapper instance.
type Dispatch struct {
	FramesRendered prometheus.Counter
	ChunksRendered prometheus.Counter
	EventOverflows prometheus.Counter
}

// NewDispatch builds and registers a Dispatch's collectors against
// registry. Passing prometheus.NewRegistry() isolates metrics per test;
// production callers typically pass prometheus.DefaultRegisterer's
// registry.
func NewDispatch(registry *prometheus.Registry) (*Dispatch, error) {
	d := &Dispatch{
		FramesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dspcc",
			Subsystem: "dispatch",
			Name:      "frames_rendered_total",
			Help:      "Total number of audio frames rendered by the dispatch wrapper.",
		}),
		ChunksRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dspcc",
			Subsystem: "dispatch",
			Name:      "chunks_rendered_total",
			Help:      "Total number of sub-block chunks rendered by the render loop.",
		}),
		EventOverflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dspcc",
			Subsystem: "dispatch",
			Name:      "event_overflows_total",
			Help:      "Total number of output events dropped because the output FIFO was full.",
		}),
	}

	for _, c := range []prometheus.Collector{d.FramesRendered, d.ChunksRendered, d.EventOverflows} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}
