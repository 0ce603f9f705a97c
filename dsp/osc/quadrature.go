// Package osc provides allocation-free oscillators for real-time kernels.
package osc

import "math"

// Quadrature is a coupled-form sine/cosine oscillator.
//
// Instead of evaluating sin and cos per sample, the state (s, c) is advanced
// with a two-multiply recurrence:
//
//	s' = s + c*w
//	c' = c - s'*w
//
// where w = 2*sin(pi*f/fs). The recurrence is not renormalised, so the
// amplitude drifts slowly over very long runs. The drift is part of the
// oscillator's character and is left alone.
//
// The zero value is not at rest phase; use NewQuadrature.
type Quadrature struct {
	sin float32
	cos float32
}

// NewQuadrature returns an oscillator at phase zero, (sin, cos) = (0, 1).
func NewQuadrature() Quadrature {
	return Quadrature{sin: 0, cos: 1}
}

// Coefficient returns the per-sample step w = 2*sin(pi*frequencyHz/sampleRate).
// A non-positive sample rate yields 0, which holds the phase still.
func Coefficient(frequencyHz, sampleRate float32) float32 {
	if sampleRate <= 0 {
		return 0
	}

	x := float32(math.Pi) * frequencyHz / sampleRate

	return 2 * float32(math.Sin(float64(x)))
}

// Step advances the oscillator by one sample using coefficient w.
func (q *Quadrature) Step(w float32) {
	// Explicit conversions keep each product rounded to float32 and stop
	// the compiler from fusing multiply-add on architectures that support it.
	q.sin += float32(q.cos * w)
	q.cos -= float32(q.sin * w)
}

// Sin returns the sine component of the current phase.
func (q *Quadrature) Sin() float32 { return q.sin }

// Cos returns the cosine component of the current phase.
func (q *Quadrature) Cos() float32 { return q.cos }

// Magnitude returns sqrt(sin^2 + cos^2). It stays close to 1 but is not held there.
func (q *Quadrature) Magnitude() float64 {
	s, c := float64(q.sin), float64(q.cos)
	return math.Sqrt(s*s + c*c)
}

// SetPhase overwrites the oscillator state.
func (q *Quadrature) SetPhase(sin, cos float32) {
	q.sin = sin
	q.cos = cos
}

// Reset returns the oscillator to phase zero.
func (q *Quadrature) Reset() {
	q.sin = 0
	q.cos = 1
}
