// Command ringmodinfo prints the ring modulator's host definition and,
// optionally, measures the carrier it produces.
//
// Usage:
//
//	ringmodinfo [flags]
//
// Without flags it prints the effect and parameter tables.
//
// Examples:
//
//	ringmodinfo
//	ringmodinfo -measure
//	ringmodinfo -measure -freq 440 -mix 1 -rate 48000 -frames 65536
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-ringmod/dsp/core"
	"github.com/cwbudde/algo-ringmod/dsp/signal"
	"github.com/cwbudde/algo-ringmod/measure/carrier"
	"github.com/cwbudde/algo-ringmod/plugin"
	"github.com/cwbudde/algo-ringmod/plugin/param"
)

func main() {
	measure := flag.Bool("measure", false, "render DC through an instance and measure the carrier")
	freq := flag.Float64("freq", 1000, "carrier frequency in Hz for -measure")
	mix := flag.Float64("mix", 1, "wet/dry mix for -measure")
	rate := flag.Uint("rate", 44100, "sample rate in Hz for -measure")
	frames := flag.Int("frames", 1<<15, "frames to render for -measure")
	block := flag.Int("block", 512, "host block size in frames for -measure")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ringmodinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the ring modulator definition and parameter table.\n")
		fmt.Fprintf(os.Stderr, "With -measure, renders a DC block and reports the carrier.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ringmodinfo\n")
		fmt.Fprintf(os.Stderr, "  ringmodinfo -measure -freq 440 -mix 1\n")
	}
	flag.Parse()

	defs := plugin.Definitions()
	printDefinition(&defs[0])

	if !*measure {
		return
	}

	m, err := render(measureConfig{
		freq:   float32(*freq),
		mix:    float32(*mix),
		rate:   uint32(*rate),
		frames: *frames,
		block:  *block,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printMeasurement(m)
}

func printDefinition(d *plugin.Definition) {
	fmt.Printf("%s  api=%06x version=%06x channels=%d params=%d\n\n",
		plugin.DecodeName(d.Name[:]), d.APIVersion, d.PluginVersion, d.Channels, d.NumParameters())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Index\tName\tUnit\tMin\tMax\tDefault\tScale\tExponent\tDescription\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t----\t----\t---\t---\t-------\t-----\t--------\t-----------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for i := range d.Parameters {
		p := &d.Parameters[i]
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%g\t%g\t%g\t%g\t%s\n",
			i,
			plugin.DecodeName(p.Name[:]),
			plugin.DecodeName(p.Unit[:]),
			p.Min,
			p.Max,
			p.Default,
			p.DisplayScale,
			p.DisplayExponent,
			p.Description,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

type measureConfig struct {
	freq   float32
	mix    float32
	rate   uint32
	frames int
	block  int
}

type measurement struct {
	cfg         measureConfig
	spectrum    carrier.Result
	energyStart float64
	energyEnd   float64
	finalSin    float32
	finalCos    float32
}

// render pushes channel 0 of a stereo DC signal through a host instance in
// fixed blocks, the way a host would.
func render(cfg measureConfig) (measurement, error) {
	if cfg.frames <= 0 || cfg.block <= 0 {
		return measurement{}, fmt.Errorf("frames and block must be > 0: %d, %d", cfg.frames, cfg.block)
	}
	if cfg.rate == 0 {
		return measurement{}, fmt.Errorf("sample rate must be > 0")
	}

	host := plugin.NewHost(1)
	h, res := host.Create()
	if res != plugin.ResultOK {
		return measurement{}, fmt.Errorf("create instance: %s", res)
	}
	defer host.Release(h)

	if res := host.SetParameter(h, param.Frequency, cfg.freq); res != plugin.ResultOK {
		return measurement{}, fmt.Errorf("set frequency: %s", res)
	}
	if res := host.SetParameter(h, param.Mix, cfg.mix); res != plugin.ResultOK {
		return measurement{}, fmt.Errorf("set mix: %s", res)
	}

	const channels = 2

	gen := signal.NewGenerator(
		core.WithSampleRate(float64(cfg.rate)),
		core.WithChannels(channels),
	)
	in, err := gen.DC(1, cfg.block)
	if err != nil {
		return measurement{}, err
	}
	out := make([]float32, len(in))

	state := plugin.State{SampleRate: cfg.rate}
	mono := make([]float64, 0, cfg.frames)

	inst := host.Instance(h)
	m := measurement{cfg: cfg}
	m.energyStart = energy(inst)

	for len(mono) < cfg.frames {
		n := min(cfg.block, cfg.frames-len(mono))
		if res := host.Process(h, state, in, out, uint32(n), channels, channels); res != plugin.ResultOK {
			return measurement{}, fmt.Errorf("process: %s", res)
		}
		for f := range n {
			mono = append(mono, float64(out[f*channels]))
		}
	}

	m.energyEnd = energy(inst)
	m.finalSin, m.finalCos = inst.Phase()

	m.spectrum, err = carrier.Analyze(mono, float64(cfg.rate))
	if err != nil {
		return measurement{}, err
	}

	return m, nil
}

// energy returns s^2+c^2 of the instance's carrier.
func energy(inst *plugin.Instance) float64 {
	q := inst.Carrier()
	m := q.Magnitude()
	return m * m
}

func printMeasurement(m measurement) {
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value string
	}{
		{"Frequency [Hz]", fmt.Sprintf("%g", m.cfg.freq)},
		{"Mix", fmt.Sprintf("%g", m.cfg.mix)},
		{"Sample rate [Hz]", fmt.Sprintf("%d", m.cfg.rate)},
		{"Frames", fmt.Sprintf("%d", m.cfg.frames)},
		{"FFT size", fmt.Sprintf("%d", m.spectrum.FFTSize)},
		{"Bin width [Hz]", fmt.Sprintf("%.4f", m.spectrum.BinHz)},
		{"Peak [Hz]", fmt.Sprintf("%.3f", m.spectrum.PeakHz)},
		{"Peak amplitude", fmt.Sprintf("%.5f", m.spectrum.PeakAmplitude)},
		{"Carrier amplitude", fmt.Sprintf("%.5f", m.spectrum.AmplitudeAt(float64(m.cfg.freq)))},
		{"DC", fmt.Sprintf("%.5f", m.spectrum.DC())},
		{"s^2+c^2 start", fmt.Sprintf("%.6f", m.energyStart)},
		{"s^2+c^2 end", fmt.Sprintf("%.6f", m.energyEnd)},
		{"Final phase (s, c)", fmt.Sprintf("(%.6f, %.6f)", m.finalSin, m.finalCos)},
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
