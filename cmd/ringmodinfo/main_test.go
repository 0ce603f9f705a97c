package main

import (
	"math"
	"testing"
)

func TestRenderMeasuresCarrier(t *testing.T) {
	m, err := render(measureConfig{freq: 750, mix: 1, rate: 48000, frames: 8192, block: 512})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}

	if got := m.spectrum.PeakHz; math.Abs(got-750) > 1 {
		t.Errorf("PeakHz = %.3f, want 750", got)
	}
	if got := m.spectrum.PeakAmplitude; math.Abs(got-1) > 0.02 {
		t.Errorf("PeakAmplitude = %.5f, want ~1", got)
	}
	if m.energyStart != 1 {
		t.Errorf("energyStart = %g, want 1", m.energyStart)
	}
}

func TestRenderValidation(t *testing.T) {
	tests := []measureConfig{
		{freq: 1000, mix: 1, rate: 48000, frames: 0, block: 512},
		{freq: 1000, mix: 1, rate: 48000, frames: 1024, block: 0},
		{freq: 1000, mix: 1, rate: 0, frames: 1024, block: 512},
	}
	for _, cfg := range tests {
		if _, err := render(cfg); err == nil {
			t.Errorf("render(%+v) expected error", cfg)
		}
	}
}
