package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ringmod/dsp/core"
)

func TestDCLength(t *testing.T) {
	g := NewGenerator(core.WithChannels(2))
	s, err := g.DC(1, 64)
	if err != nil {
		t.Fatalf("DC() error = %v", err)
	}
	if len(s) != 128 {
		t.Fatalf("len = %d, want 128", len(s))
	}
	for i, v := range s {
		if v != 1 {
			t.Fatalf("s[%d] = %v, want 1", i, v)
		}
	}
}

func TestGeneratorConfig(t *testing.T) {
	cfg := NewGenerator(core.WithSampleRate(44100), core.WithChannels(1)).Config()
	if cfg.SampleRate != 44100 || cfg.Channels != 1 {
		t.Fatalf("Config() = %+v", cfg)
	}
}

func TestGeneratorValidation(t *testing.T) {
	g := NewGenerator()

	if _, err := g.DC(1, 0); err == nil {
		t.Error("DC(0 frames) expected error")
	}
	if _, err := g.Tone(-1, 1); err == nil {
		t.Error("Tone(-1 Hz) expected error")
	}
	if _, err := g.Tone(math.NaN(), 1); err == nil {
		t.Error("Tone(NaN) expected error")
	}
}

func TestToneIsContinuousAcrossFills(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000), core.WithChannels(2))

	whole, err := g.Tone(440, 0.5)
	if err != nil {
		t.Fatalf("Tone() error = %v", err)
	}
	want := make([]float32, 200)
	if n := whole.Fill(want); n != 100 {
		t.Fatalf("Fill() = %d frames, want 100", n)
	}

	split, _ := g.Tone(440, 0.5)
	got := make([]float32, 200)
	split.Fill(got[:62])
	split.Fill(got[62:])

	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("sample %d: got=%v want=%v", i, got[i], want[i])
		}
	}

	for n := range 100 {
		if got[2*n] != got[2*n+1] {
			t.Fatalf("frame %d channels differ", n)
		}
	}
}

func TestToneFillsWholeFramesOnly(t *testing.T) {
	g := NewGenerator(core.WithChannels(2))
	tone, _ := g.Tone(1000, 1)

	buf := []float32{9, 9, 9, 9, 9}
	if n := tone.Fill(buf); n != 2 {
		t.Fatalf("Fill() = %d, want 2", n)
	}
	if buf[4] != 9 {
		t.Fatal("partial frame was written")
	}
}
