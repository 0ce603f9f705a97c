// Package param holds the ring modulator's user-adjustable controls.
//
// Values live in lock-free cells so a control thread can write while the
// audio thread reads, without either side blocking.
package param

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// Parameter indices, in host order.
const (
	Frequency = 0
	Mix       = 1

	// Count is the number of declared parameters.
	Count = 2
)

// ErrInvalidIndex reports a parameter index outside the accepted range.
var ErrInvalidIndex = errors.New("param: invalid index")

// Descriptor is the static metadata of one parameter.
//
// Min and Max are advisory: they drive host UI and display only, and Store
// does not enforce them.
type Descriptor struct {
	Name        string
	Unit        string
	Description string

	Min     float32
	Max     float32
	Default float32

	// DisplayScale multiplies the value for display only (100 shows a 0..1
	// value as a percentage). DisplayExponent maps the value to a slider.
	DisplayScale    float32
	DisplayExponent float32
}

var descriptors = [Count]Descriptor{
	Frequency: {
		Name:            "Frequency",
		Unit:            "Hz",
		Description:     "The frequency of the sine wave",
		Min:             0,
		Max:             22050,
		Default:         1000,
		DisplayScale:    1,
		DisplayExponent: 3,
	},
	Mix: {
		Name:            "Mix Amount",
		Unit:            "%",
		Description:     "The amount of mix!",
		Min:             0,
		Max:             1,
		Default:         0.5,
		DisplayScale:    1,
		DisplayExponent: 1,
	},
}

// Descriptors returns a copy of the parameter table in index order.
func Descriptors() [Count]Descriptor {
	return descriptors
}

// Describe returns the descriptor at index.
func Describe(index int) (Descriptor, error) {
	if index < 0 || index >= Count {
		return Descriptor{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, index, Count)
	}

	return descriptors[index], nil
}

// Store holds the current value of every parameter for one instance.
//
// Each value is a single atomic cell, so one writer and any number of
// readers can proceed concurrently. Store does not clamp: whatever value is
// written is read back unchanged.
//
// Index validation accepts index == Count, which addresses a spare cell after
// the last parameter. Hosts have shipped against that boundary, so it is kept.
// The spare cell is never read by processing.
type Store struct {
	cells [Count + 1]atomic.Uint32
}

// NewStore returns a store initialised to every descriptor's default.
func NewStore() *Store {
	s := &Store{}
	s.Reset()

	return s
}

// Reset restores every parameter to its default and clears the spare cell.
func (s *Store) Reset() {
	for i, d := range descriptors {
		s.cells[i].Store(math.Float32bits(d.Default))
	}

	s.cells[Count].Store(0)
}

// Set writes value into the parameter at index.
func (s *Store) Set(index int, value float32) error {
	if !accepted(index) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	s.cells[index].Store(math.Float32bits(value))

	return nil
}

// Get returns the value stored at index.
func (s *Store) Get(index int) (float32, error) {
	if !accepted(index) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	return s.load(index), nil
}

// Frequency returns the current carrier frequency in Hz.
func (s *Store) Frequency() float32 { return s.load(Frequency) }

// Mix returns the current wet/dry mix.
func (s *Store) Mix() float32 { return s.load(Mix) }

func (s *Store) load(index int) float32 {
	return math.Float32frombits(s.cells[index].Load())
}

// accepted reports whether index passes validation. The upper bound is
// inclusive; see Store.
func accepted(index int) bool {
	return index >= 0 && index <= Count
}
