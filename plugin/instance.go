package plugin

import (
	"github.com/cwbudde/algo-ringmod/dsp/effects/modulation"
	"github.com/cwbudde/algo-ringmod/dsp/osc"
	"github.com/cwbudde/algo-ringmod/plugin/param"
)

// Result is the status code returned to the host for every callback.
type Result int32

const (
	// ResultOK reports success.
	ResultOK Result = 0
	// ResultErrUnsupported reports a rejected call, such as an invalid
	// parameter index or an unknown instance handle.
	ResultErrUnsupported Result = 1
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultErrUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// State is the host-supplied context of one processing call.
type State struct {
	// SampleRate is the host's current sample rate in Hz.
	SampleRate uint32
}

// Instance is the state of one loaded effect: its parameters and its carrier
// oscillator. Process must only be called from one goroutine at a time;
// parameter calls may come from any goroutine concurrently with Process.
type Instance struct {
	params *param.Store
	engine *modulation.RingModulator
}

// NewInstance returns an instance with default parameters and the carrier at
// rest phase.
func NewInstance() *Instance {
	// Construction without options has no failure path.
	engine, _ := modulation.NewRingModulator()

	return &Instance{
		params: param.NewStore(),
		engine: engine,
	}
}

// Phase returns the carrier's current (sin, cos) state.
func (in *Instance) Phase() (sin, cos float32) {
	return in.engine.Phase()
}

// Carrier returns a copy of the carrier oscillator.
func (in *Instance) Carrier() osc.Quadrature {
	return in.engine.Carrier()
}

// SetParameter stores value at index without clamping.
func (in *Instance) SetParameter(index int, value float32) Result {
	if err := in.params.Set(index, value); err != nil {
		return ResultErrUnsupported
	}

	return ResultOK
}

// GetParameter returns the value at index. The display string is always
// empty; hosts format values themselves.
func (in *Instance) GetParameter(index int) (value float32, display string, res Result) {
	v, err := in.params.Get(index)
	if err != nil {
		return 0, "", ResultErrUnsupported
	}

	return v, "", ResultOK
}

// GetNamedBuffer answers a host request for named analysis data. The effect
// publishes none, so the call succeeds without touching buffer.
func (in *Instance) GetNamedBuffer(name string, buffer []float32, numSamples int) Result {
	return ResultOK
}

// Process ring-modulates length frames of interleaved audio from input into
// output.
//
// Both buffers are indexed with outChannels: sample (n, i) is read from and
// written to n*outChannels+i. inChannels is accepted for the host contract
// and must equal outChannels. Buffers shorter than length*outChannels, or
// negative channel counts, are rejected without writing. With outChannels 0
// nothing is written but the carrier still advances length frames.
func (in *Instance) Process(state State, input, output []float32, length uint32, inChannels, outChannels int) Result {
	if inChannels < 0 || outChannels < 0 {
		return ResultErrUnsupported
	}

	frames := int(length)

	// Compare frame counts so huge channel counts cannot overflow the
	// sample count.
	if outChannels > 0 && (frames > len(input)/outChannels || frames > len(output)/outChannels) {
		return ResultErrUnsupported
	}

	in.engine.ProcessInterleaved(output, input, frames, outChannels,
		float32(state.SampleRate), in.params.Frequency(), in.params.Mix())

	return ResultOK
}
