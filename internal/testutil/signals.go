package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// InterleavedSine32 generates frames of a float32 sine wave, duplicated onto
// every channel of an interleaved buffer.
func InterleavedSine32(freqHz, sampleRate, amplitude float64, frames, channels int) []float32 {
	out := make([]float32, frames*channels)
	step := 2 * math.Pi * freqHz / sampleRate
	for n := range frames {
		v := float32(amplitude * math.Sin(step*float64(n)))
		for i := range channels {
			out[n*channels+i] = v
		}
	}
	return out
}

// DeterministicNoise32 generates float32 white noise with a fixed seed.
func DeterministicNoise32(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// DC32 generates a constant-valued float32 signal.
func DC32(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Widen converts float32 samples to float64.
func Widen(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
