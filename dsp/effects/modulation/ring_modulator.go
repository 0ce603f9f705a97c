package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ringmod/dsp/osc"
)

// RingModulatorOption mutates ring modulator construction parameters.
type RingModulatorOption func(*ringModConfig) error

type ringModConfig struct {
	sin float32
	cos float32
}

func defaultRingModConfig() ringModConfig {
	rest := osc.NewQuadrature()

	return ringModConfig{
		sin: rest.Sin(),
		cos: rest.Cos(),
	}
}

// WithRingModPhase seeds the carrier oscillator with an explicit (sin, cos)
// state instead of the rest phase (0, 1).
func WithRingModPhase(sin, cos float32) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if !finite32(sin) || !finite32(cos) {
			return fmt.Errorf("ring modulator phase must be finite: (%f, %f)", sin, cos)
		}

		cfg.sin = sin
		cfg.cos = cos

		return nil
	}
}

// RingModulator multiplies an interleaved signal by a sine carrier and blends
// the result with the dry signal.
//
// The carrier is a coupled-form quadrature oscillator (see osc.Quadrature)
// whose phase persists across calls, so consecutive blocks join without
// discontinuity. The output for frame n, channel i is:
//
//	out[n, i] = in[n, i] * (1 - mix + mix*s[n])
//
// where s[n] is the carrier's sine component before the n-th advance. The
// carrier advances once per frame, after every channel of that frame has been
// written.
type RingModulator struct {
	carrier osc.Quadrature
}

// NewRingModulator creates a ring modulator at rest phase with optional
// configuration overrides.
func NewRingModulator(opts ...RingModulatorOption) (*RingModulator, error) {
	cfg := defaultRingModConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &RingModulator{}
	r.carrier.SetPhase(cfg.sin, cfg.cos)

	return r, nil
}

// Reset returns the carrier to phase zero.
func (r *RingModulator) Reset() {
	r.carrier.Reset()
}

// Phase returns the carrier's current (sin, cos) state.
func (r *RingModulator) Phase() (sin, cos float32) {
	return r.carrier.Sin(), r.carrier.Cos()
}

// Carrier returns a copy of the carrier oscillator state.
func (r *RingModulator) Carrier() osc.Quadrature {
	return r.carrier
}

// ProcessInterleaved ring-modulates frames of interleaved audio from src into
// dst. Sample (n, i) lives at n*channels+i in both buffers; each buffer must
// hold at least frames*channels samples. dst and src may alias.
//
// The carrier advances once per frame even when channels is 0.
// ProcessInterleaved does not allocate, block, or retain the buffers.
func (r *RingModulator) ProcessInterleaved(dst, src []float32, frames, channels int, sampleRate, frequencyHz, mix float32) {
	if frames <= 0 {
		return
	}

	w := osc.Coefficient(frequencyHz, sampleRate)

	// With no channels nothing is written, but the carrier still runs.
	if channels <= 0 {
		for range frames {
			r.carrier.Step(w)
		}
		return
	}

	n := frames * channels
	src = src[:n]
	dst = dst[:n]

	dry := 1 - mix

	for off := 0; off < n; off += channels {
		gain := dry + float32(mix*r.carrier.Sin())

		frameIn := src[off : off+channels]
		frameOut := dst[off : off+channels]

		for i, x := range frameIn {
			frameOut[i] = x * gain
		}

		r.carrier.Step(w)
	}
}

// ProcessInPlace ring-modulates a mono buffer in place.
func (r *RingModulator) ProcessInPlace(buf []float32, sampleRate, frequencyHz, mix float32) {
	r.ProcessInterleaved(buf, buf, len(buf), 1, sampleRate, frequencyHz, mix)
}

func finite32(x float32) bool {
	v := float64(x)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
