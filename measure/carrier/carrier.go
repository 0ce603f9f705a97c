// Package carrier measures the spectral content of ring-modulated signals.
//
// Analyze windows a block with a Hann window, transforms it with a
// radix-2 FFT, and reports the dominant non-DC component along with a
// per-frequency amplitude lookup. Amplitudes are normalised so that a sine
// of amplitude A centred on a bin reads as A.
package carrier

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Result holds one spectral measurement.
type Result struct {
	SampleRate float64
	FFTSize    int
	BinHz      float64

	// PeakHz and PeakAmplitude describe the strongest bin above DC.
	PeakHz        float64
	PeakAmplitude float64

	amplitudes []float64
}

// Analyze measures signal sampled at sampleRate. The signal is zero-padded
// to the next power of two.
func Analyze(signal []float64, sampleRate float64) (Result, error) {
	if len(signal) < 2 {
		return Result{}, fmt.Errorf("carrier: signal needs at least 2 samples: %d", len(signal))
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("carrier: sample rate must be > 0 and finite: %f", sampleRate)
	}

	fftSize := nextPowerOfTwo(len(signal))

	windowed := make([]float64, len(signal))
	copy(windowed, signal)

	coeffs := hann(len(signal))
	vecmath.MulBlockInPlace(windowed, coeffs)

	coherentGain := 0.0
	for _, c := range coeffs {
		coherentGain += c
	}

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("carrier: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("carrier: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	amps := make([]float64, bins)
	vecmath.Magnitude(amps, re, im)

	// One-sided spectrum: double everything except DC and Nyquist.
	for k := range amps {
		scale := 2 / coherentGain
		if k == 0 || k == bins-1 {
			scale = 1 / coherentGain
		}

		amps[k] *= scale
	}

	res := Result{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		BinHz:      sampleRate / float64(fftSize),
		amplitudes: amps,
	}

	peak := 1
	for k := 2; k < bins; k++ {
		if amps[k] > amps[peak] {
			peak = k
		}
	}

	res.PeakHz = res.interpolatedPeakHz(peak)
	res.PeakAmplitude = amps[peak]

	return res, nil
}

// AmplitudeAt returns the largest amplitude within one bin of hz. Looking at
// the neighbours absorbs scalloping when hz falls between bins.
func (r Result) AmplitudeAt(hz float64) float64 {
	if len(r.amplitudes) == 0 || r.BinHz <= 0 {
		return 0
	}

	center := int(math.Round(hz / r.BinHz))
	best := 0.0

	for k := center - 1; k <= center+1; k++ {
		if k < 0 || k >= len(r.amplitudes) {
			continue
		}

		best = math.Max(best, r.amplitudes[k])
	}

	return best
}

// DC returns the amplitude of the zero-frequency bin.
func (r Result) DC() float64 {
	if len(r.amplitudes) == 0 {
		return 0
	}

	return r.amplitudes[0]
}

// interpolatedPeakHz refines the peak location with a parabola through the
// peak bin and its neighbours.
func (r Result) interpolatedPeakHz(k int) float64 {
	if k <= 0 || k >= len(r.amplitudes)-1 {
		return float64(k) * r.BinHz
	}

	a, b, c := r.amplitudes[k-1], r.amplitudes[k], r.amplitudes[k+1]

	denom := a - 2*b + c
	if denom == 0 {
		return float64(k) * r.BinHz
	}

	delta := 0.5 * (a - c) / denom

	return (float64(k) + delta) * r.BinHz
}

func hann(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}

	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}

	return out
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
