// Command ringmodplay runs the ring modulator inside a minimal real-time
// host and plays the result on the default audio device.
//
// Usage:
//
//	ringmodplay [flags] [file.mp3]
//
// Without a file it modulates a generated test tone.
//
// Examples:
//
//	ringmodplay -freq 30 -mix 1
//	ringmodplay -freq 440 -mix 0.5 song.mp3
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-ringmod/dsp/core"
	"github.com/cwbudde/algo-ringmod/dsp/signal"
	"github.com/cwbudde/algo-ringmod/internal/playback"
	"github.com/cwbudde/algo-ringmod/plugin"
	"github.com/cwbudde/algo-ringmod/plugin/param"
)

func main() {
	freq := flag.Float64("freq", 1000, "carrier frequency in Hz")
	mix := flag.Float64("mix", 0.5, "wet/dry mix, 0 dry to 1 fully modulated")
	block := flag.Int("block", 512, "host block size in frames")
	toneHz := flag.Float64("tone", 220, "test tone frequency in Hz when no file is given")
	seconds := flag.Float64("seconds", 5, "test tone length in seconds")
	rate := flag.Int("rate", 48000, "test tone sample rate in Hz")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ringmodplay [flags] [file.mp3]\n\n")
		fmt.Fprintf(os.Stderr, "Plays an MP3 file or a test tone through the ring modulator.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0), *freq, *mix, *block, *toneHz, *seconds, *rate); err != nil {
		log.Fatalf("ringmodplay: %v", err)
	}
}

func run(path string, freq, mix float64, block int, toneHz, seconds float64, rate int) error {
	if block <= 0 {
		return fmt.Errorf("block must be > 0: %d", block)
	}

	src, closeSrc, err := openSource(path, toneHz, seconds, rate)
	if err != nil {
		return err
	}
	defer closeSrc()

	host := plugin.NewHost(1)
	h, res := host.Create()
	if res != plugin.ResultOK {
		return fmt.Errorf("create instance: %s", res)
	}
	defer host.Release(h)

	if res := host.SetParameter(h, param.Frequency, float32(freq)); res != plugin.ResultOK {
		return fmt.Errorf("set frequency: %s", res)
	}
	if res := host.SetParameter(h, param.Mix, float32(mix)); res != plugin.ResultOK {
		return fmt.Errorf("set mix: %s", res)
	}

	op := &oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: playback.Channels,
		Format:       oto.FormatFloat32LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	log.Printf("Audio output initialized: %dHz, %d channels, block %d", src.SampleRate(), playback.Channels, block)

	st := playback.NewStream(host, h, src, block)
	player := otoCtx.NewPlayer(st)
	defer player.Close()

	player.Play()
	log.Printf("Playing: carrier %gHz, mix %g", freq, mix)

	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	sin, cos := host.Instance(h).Phase()
	log.Printf("Done: %d frames, final carrier phase (%.6f, %.6f)", st.Frames(), sin, cos)

	return nil
}

func openSource(path string, toneHz, seconds float64, rate int) (playback.Source, func(), error) {
	if path == "" {
		gen := signal.NewGenerator(
			core.WithSampleRate(float64(rate)),
			core.WithChannels(playback.Channels),
		)
		tone, err := gen.Tone(toneHz, 0.5)
		if err != nil {
			return nil, nil, err
		}

		log.Printf("Source: %gHz test tone, %gs", toneHz, seconds)

		sr := int(gen.Config().SampleRate)
		return playback.NewToneSource(tone, sr, int(seconds*float64(sr))), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	src, err := playback.NewMP3Source(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	log.Printf("Source: %s, %dHz", path, src.SampleRate())

	return src, func() { _ = f.Close() }, nil
}
