package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestInterleavedSine32DuplicatesChannels(t *testing.T) {
	s := InterleavedSine32(440, 44100, 0.5, 32, 3)
	if len(s) != 96 {
		t.Fatalf("len = %d, want 96", len(s))
	}
	for n := range 32 {
		frame := s[n*3 : n*3+3]
		if frame[0] != frame[1] || frame[0] != frame[2] {
			t.Fatalf("frame %d channels differ: %v", n, frame)
		}
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
}

func TestDeterministicNoise32(t *testing.T) {
	a := DeterministicNoise32(42, 1.0, 64)
	b := DeterministicNoise32(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDC32(t *testing.T) {
	d := DC32(0.25, 10)
	for i, v := range d {
		if v != 0.25 {
			t.Fatalf("d[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestWiden(t *testing.T) {
	w := Widen([]float32{0.5, -1, 2})
	if len(w) != 3 || w[0] != 0.5 || w[1] != -1 || w[2] != 2 {
		t.Fatalf("Widen = %v", w)
	}
}
