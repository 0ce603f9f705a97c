package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ringmod/dsp/core"
)

// Generator creates deterministic interleaved test signals from a shared
// block format.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// DC generates frames of a constant value on every channel.
func (g *Generator) DC(value float32, frames int) ([]float32, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("dc frames must be > 0: %d", frames)
	}
	out := make([]float32, frames*g.cfg.Channels)
	for i := range out {
		out[i] = value
	}
	return out, nil
}

// Tone is a streaming sine source that fills interleaved blocks, keeping its
// phase between calls.
type Tone struct {
	channels int
	step     float64
	phase    float64
	amp      float32
}

// Tone returns a streaming sine at freqHz in the generator's format.
func (g *Generator) Tone(freqHz float64, amplitude float32) (*Tone, error) {
	if freqHz < 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return nil, fmt.Errorf("tone frequency must be >= 0 and finite: %f", freqHz)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	return &Tone{
		channels: g.cfg.Channels,
		step:     2 * math.Pi * freqHz / g.cfg.SampleRate,
		amp:      amplitude,
	}, nil
}

// Fill writes whole frames into buf and returns the number of frames written.
func (t *Tone) Fill(buf []float32) int {
	frames := core.FramesIn(buf, t.channels)
	for n := range frames {
		v := t.amp * float32(math.Sin(t.phase))
		frame := buf[n*t.channels : (n+1)*t.channels]
		for i := range frame {
			frame[i] = v
		}
		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return frames
}
