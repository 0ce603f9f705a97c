// Package modulation provides the ring modulation engine.
//
// RingModulator multiplies interleaved audio by a coupled-form sine carrier
// and blends the result with the dry signal:
//
//	out = in * ((1 - mix) + mix*sin)
//
// The carrier advances once per frame and is never reset between calls, so
// consecutive blocks form one continuous carrier. The engine holds no
// parameters of its own; frequency and mix are passed with every block.
package modulation
