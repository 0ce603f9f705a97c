package plugin

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the number of live instances a Host created with
// NewHost(0) can hold.
const DefaultCapacity = 256

// Handle identifies one instance inside a Host. The zero Handle never
// refers to an instance.
//
// The low 32 bits select a slot and the high 32 bits carry the slot's
// generation, so a handle goes stale once its instance is released even if
// the slot is reused.
type Handle uint64

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) split() (index, gen uint32) {
	return uint32(h), uint32(h >> 32)
}

type slot struct {
	inst atomic.Pointer[Instance]
	gen  atomic.Uint32
}

// Host is a fixed-capacity arena of instances addressed by Handle.
//
// Create and Release serialise on a mutex and belong on a control thread.
// Every other callback looks its instance up with atomic loads only, so the
// audio thread never blocks.
type Host struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
}

// NewHost returns a Host able to hold capacity live instances. A
// non-positive capacity selects DefaultCapacity.
func NewHost(capacity int) *Host {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	h := &Host{
		slots: make([]slot, capacity),
		free:  make([]uint32, 0, capacity),
	}

	for i := capacity - 1; i >= 0; i-- {
		h.free = append(h.free, uint32(i))
	}

	return h
}

// Create allocates an instance with default parameters and the carrier at
// rest phase. It fails only when the arena is full.
func (h *Host) Create() (Handle, Result) {
	inst := NewInstance()

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.free) == 0 {
		return 0, ResultErrUnsupported
	}

	index := h.free[len(h.free)-1]
	h.free = h.free[:len(h.free)-1]

	s := &h.slots[index]

	// Generation 0 is reserved so the zero Handle stays invalid.
	gen := s.gen.Load() + 1
	if gen == 0 {
		gen = 1
	}

	s.gen.Store(gen)
	s.inst.Store(inst)

	return makeHandle(index, gen), ResultOK
}

// Release destroys the instance behind handle. The handle and any copies of
// it are invalid afterwards.
func (h *Host) Release(handle Handle) Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	index, gen := handle.split()
	if gen == 0 || int(index) >= len(h.slots) {
		return ResultErrUnsupported
	}

	s := &h.slots[index]
	if s.gen.Load() != gen || s.inst.Load() == nil {
		return ResultErrUnsupported
	}

	s.inst.Store(nil)
	h.free = append(h.free, index)

	return ResultOK
}

// Instance returns the live instance behind handle, or nil.
func (h *Host) Instance(handle Handle) *Instance {
	index, gen := handle.split()
	if gen == 0 || int(index) >= len(h.slots) {
		return nil
	}

	s := &h.slots[index]

	// Create stores the generation before the pointer, so a pointer
	// installed after this handle was released fails the check below.
	inst := s.inst.Load()
	if s.gen.Load() != gen {
		return nil
	}

	return inst
}

// Len returns the number of live instances.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.slots) - len(h.free)
}

// SetParameter forwards to Instance.SetParameter.
func (h *Host) SetParameter(handle Handle, index int, value float32) Result {
	inst := h.Instance(handle)
	if inst == nil {
		return ResultErrUnsupported
	}

	return inst.SetParameter(index, value)
}

// GetParameter forwards to Instance.GetParameter.
func (h *Host) GetParameter(handle Handle, index int) (float32, string, Result) {
	inst := h.Instance(handle)
	if inst == nil {
		return 0, "", ResultErrUnsupported
	}

	return inst.GetParameter(index)
}

// GetNamedBuffer forwards to Instance.GetNamedBuffer.
func (h *Host) GetNamedBuffer(handle Handle, name string, buffer []float32, numSamples int) Result {
	inst := h.Instance(handle)
	if inst == nil {
		return ResultErrUnsupported
	}

	return inst.GetNamedBuffer(name, buffer, numSamples)
}

// Process forwards to Instance.Process.
func (h *Host) Process(handle Handle, state State, input, output []float32, length uint32, inChannels, outChannels int) Result {
	inst := h.Instance(handle)
	if inst == nil {
		return ResultErrUnsupported
	}

	return inst.Process(state, input, output, length, inChannels, outChannels)
}
