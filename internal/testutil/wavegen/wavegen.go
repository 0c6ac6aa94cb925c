// Package wavegen generates deterministic waveforms, ported from
// original_source's soul_AudioDataGeneration.cpp WaveGenerators namespace
// (Sine, Saw, Square, Triangle, each driven by a shared phase accumulator).
// Waveform generation is an external collaborator outside either core's
// scope, so it lives here rather than in internal/performer or
// internal/dispatch. No other package of the module imports it; only its
// own tests exercise it.
package wavegen

import "math"

// Generator produces one sample at a time from a running phase, advanced
// once per sample by phaseIncrement = frequency / sampleRate.
type Generator struct {
	phaseIncrement float64
	currentPhase   float64
	shape          shape
	triangleSum    float64
}

type shape int

const (
	shapeSine shape = iota
	shapeSaw
	shapeSquare
	shapeTriangle
)

// NewSine returns a generator producing a sine wave at frequencyHz.
func NewSine(frequencyHz, sampleRate float64) *Generator {
	return newGenerator(shapeSine, frequencyHz, sampleRate)
}

// NewSaw returns a generator producing a band-limited (PolyBLEP) sawtooth.
func NewSaw(frequencyHz, sampleRate float64) *Generator {
	return newGenerator(shapeSaw, frequencyHz, sampleRate)
}

// NewSquare returns a generator producing a band-limited (PolyBLEP) square wave.
func NewSquare(frequencyHz, sampleRate float64) *Generator {
	return newGenerator(shapeSquare, frequencyHz, sampleRate)
}

// NewTriangle returns a generator producing a triangle wave, integrated
// from the square wave exactly as the original's Triangle : Square does.
func NewTriangle(frequencyHz, sampleRate float64) *Generator {
	g := newGenerator(shapeTriangle, frequencyHz, sampleRate)
	g.triangleSum = 1
	return g
}

func newGenerator(s shape, frequencyHz, sampleRate float64) *Generator {
	return &Generator{phaseIncrement: frequencyHz / sampleRate, shape: s}
}

// Next returns the current sample and advances the phase by one step.
func (g *Generator) Next() float64 {
	sample := g.sample()
	g.advance()
	return sample
}

// Fill writes len(buf) consecutive samples into buf.
func (g *Generator) Fill(buf []float32) {
	for i := range buf {
		buf[i] = float32(g.Next())
	}
}

func (g *Generator) sample() float64 {
	switch g.shape {
	case shapeSine:
		return math.Sin(g.currentPhase * 2 * math.Pi)
	case shapeSaw:
		return -1 + 2*g.currentPhase - g.blep(g.currentPhase)
	case shapeSquare:
		return g.squareSample()
	case shapeTriangle:
		g.triangleSum += 4 * g.phaseIncrement * g.squareSample()
		return g.triangleSum
	default:
		return 0
	}
}

func (g *Generator) squareSample() float64 {
	base := -1.0
	if g.currentPhase >= 0.5 {
		base = 1.0
	}
	wrapped := math.Mod(g.currentPhase+0.5, 1.0)
	return base - g.blep(g.currentPhase) + g.blep(wrapped)
}

// blep is the polynomial band-limited step correction shared by Saw,
// Square, and Triangle in the source, smoothing the discontinuity each
// waveform would otherwise have at its phase wrap.
func (g *Generator) blep(phase float64) float64 {
	if phase < g.phaseIncrement {
		t := phase / g.phaseIncrement
		return t + t - t*t - 1
	}
	if phase > 1-g.phaseIncrement {
		t := (phase - 1) / g.phaseIncrement
		return t*t + t + t + 1
	}
	return 0
}

func (g *Generator) advance() {
	g.currentPhase += g.phaseIncrement
	for g.currentPhase >= 1 {
		g.currentPhase -= 1
	}
}
