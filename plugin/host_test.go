package plugin

import (
	"sync"
	"testing"

	"github.com/cwbudde/algo-ringmod/internal/testutil"
	"github.com/cwbudde/algo-ringmod/plugin/param"
)

func TestHostLifecycle(t *testing.T) {
	h := NewHost(4)

	handle, res := h.Create()
	if res != ResultOK {
		t.Fatalf("Create() = %v", res)
	}
	if handle == 0 {
		t.Fatal("Create() returned the zero handle")
	}
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}

	if v, _, res := h.GetParameter(handle, param.Frequency); res != ResultOK || v != 1000 {
		t.Fatalf("GetParameter() = %g, %v; want 1000, ok", v, res)
	}
	if res := h.SetParameter(handle, param.Mix, 0); res != ResultOK {
		t.Fatalf("SetParameter() = %v", res)
	}

	in := testutil.DC32(0.25, 8)
	out := make([]float32, 8)
	if res := h.Process(handle, State{SampleRate: 48000}, in, out, 4, 2, 2); res != ResultOK {
		t.Fatalf("Process() = %v", res)
	}
	testutil.RequireSlice32NearlyEqual(t, out, in, 0)

	if res := h.GetNamedBuffer(handle, "x", out, len(out)); res != ResultOK {
		t.Fatalf("GetNamedBuffer() = %v", res)
	}

	if res := h.Release(handle); res != ResultOK {
		t.Fatalf("Release() = %v", res)
	}
	if h.Len() != 0 {
		t.Fatalf("Len() = %d after release, want 0", h.Len())
	}
}

func TestHostReleasedHandleIsRejected(t *testing.T) {
	h := NewHost(1)
	handle, _ := h.Create()
	h.Release(handle)

	if res := h.Release(handle); res != ResultErrUnsupported {
		t.Errorf("double Release() = %v, want unsupported", res)
	}
	if h.Instance(handle) != nil {
		t.Error("Instance() returned a released instance")
	}
	if res := h.SetParameter(handle, 0, 1); res != ResultErrUnsupported {
		t.Errorf("SetParameter() = %v, want unsupported", res)
	}
	if _, _, res := h.GetParameter(handle, 0); res != ResultErrUnsupported {
		t.Errorf("GetParameter() = %v, want unsupported", res)
	}
	if res := h.GetNamedBuffer(handle, "", nil, 0); res != ResultErrUnsupported {
		t.Errorf("GetNamedBuffer() = %v, want unsupported", res)
	}
	if res := h.Process(handle, State{SampleRate: 48000}, nil, nil, 0, 2, 2); res != ResultErrUnsupported {
		t.Errorf("Process() = %v, want unsupported", res)
	}

	// The slot is reused under a new generation; the old handle stays dead.
	fresh, res := h.Create()
	if res != ResultOK {
		t.Fatalf("Create() after release = %v", res)
	}
	if fresh == handle {
		t.Fatal("reused slot returned the stale handle")
	}
	if h.Instance(handle) != nil {
		t.Fatal("stale handle resolved to the new instance")
	}
	if h.Instance(fresh) == nil {
		t.Fatal("fresh handle does not resolve")
	}
}

func TestHostInvalidHandles(t *testing.T) {
	h := NewHost(2)

	for _, handle := range []Handle{0, makeHandle(0, 1), makeHandle(5, 1), makeHandle(1, 0)} {
		if h.Instance(handle) != nil {
			t.Errorf("Instance(%#x) resolved on an empty host", uint64(handle))
		}
		if res := h.Release(handle); res != ResultErrUnsupported {
			t.Errorf("Release(%#x) = %v, want unsupported", uint64(handle), res)
		}
	}
}

func TestHostCapacity(t *testing.T) {
	h := NewHost(2)

	a, _ := h.Create()
	if _, res := h.Create(); res != ResultOK {
		t.Fatalf("second Create() = %v", res)
	}
	if _, res := h.Create(); res != ResultErrUnsupported {
		t.Fatalf("Create() on a full host = %v, want unsupported", res)
	}

	h.Release(a)
	if _, res := h.Create(); res != ResultOK {
		t.Fatalf("Create() after release = %v", res)
	}
}

func TestHostDefaultCapacity(t *testing.T) {
	h := NewHost(0)
	if len(h.slots) != DefaultCapacity {
		t.Fatalf("capacity = %d, want %d", len(h.slots), DefaultCapacity)
	}
}

func TestHostInstancesAreIndependent(t *testing.T) {
	h := NewHost(2)
	a, _ := h.Create()
	b, _ := h.Create()

	h.SetParameter(a, param.Frequency, 3000)

	in := testutil.DC32(1, 32)
	out := make([]float32, 32)
	h.Process(a, State{SampleRate: 48000}, in, out, 32, 1, 1)

	if v, _, _ := h.GetParameter(b, param.Frequency); v != 1000 {
		t.Fatalf("instance b frequency = %g, want untouched 1000", v)
	}
	if sin, cos := h.Instance(b).Phase(); sin != 0 || cos != 1 {
		t.Fatalf("instance b phase = (%g, %g), want rest", sin, cos)
	}
}

func TestHostConcurrentParameterWrites(t *testing.T) {
	h := NewHost(1)
	handle, _ := h.Create()

	in := testutil.DeterministicNoise32(11, 1, 256)
	out := make([]float32, len(in))

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for i := range 2000 {
			h.SetParameter(handle, param.Frequency, float32(i))
			h.SetParameter(handle, param.Mix, float32(i%2))
		}
	}()

	for range 200 {
		if res := h.Process(handle, State{SampleRate: 48000}, in, out, 128, 2, 2); res != ResultOK {
			t.Fatalf("Process() = %v", res)
		}
	}

	wg.Wait()
	testutil.RequireFinite32(t, out)
}

func TestHostStaleHandleNeverResolvesToReusedSlot(t *testing.T) {
	h := NewHost(1)
	stale, _ := h.Create()
	h.Release(stale)

	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			handle, res := h.Create()
			if res == ResultOK {
				h.Release(handle)
			}
		}
	}()

	for range 10000 {
		if inst := h.Instance(stale); inst != nil {
			close(done)
			wg.Wait()
			t.Fatal("stale handle resolved to a reused slot")
		}
	}

	close(done)
	wg.Wait()
}
