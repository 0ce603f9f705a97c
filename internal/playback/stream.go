package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-ringmod/dsp/core"
	"github.com/cwbudde/algo-ringmod/plugin"
)

// Channels is the interleaved layout the effect runs in.
const Channels = 2

const bytesPerSample = 4

// Stream is the io.Reader an audio device pulls from. Every Read renders at
// most one block from src through the host instance and hands it out as
// float32 little-endian PCM.
type Stream struct {
	host   *plugin.Host
	handle plugin.Handle
	state  plugin.State
	src    Source

	in      []float32
	out     []float32
	pending []byte
	rest    []byte

	frames int
	err    error
}

// NewStream renders src through the instance behind handle in blocks of
// blockFrames frames.
func NewStream(host *plugin.Host, handle plugin.Handle, src Source, blockFrames int) *Stream {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(src.SampleRate())),
		core.WithBlockSize(blockFrames),
		core.WithChannels(Channels),
	)
	samples := cfg.BlockSamples()

	return &Stream{
		host:    host,
		handle:  handle,
		state:   plugin.State{SampleRate: uint32(src.SampleRate())},
		src:     src,
		in:      make([]float32, samples),
		out:     make([]float32, samples),
		pending: make([]byte, samples*bytesPerSample),
	}
}

// Frames returns the number of frames rendered so far.
func (s *Stream) Frames() int { return s.frames }

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	if len(s.rest) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		if err := s.render(); err != nil {
			s.err = err
			if len(s.rest) == 0 {
				return 0, err
			}
		}
	}

	n := copy(p, s.rest)
	s.rest = s.rest[n:]

	return n, nil
}

func (s *Stream) render() error {
	frames, err := s.src.Fill(s.in)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if frames > 0 {
		n := frames * Channels
		res := s.host.Process(s.handle, s.state, s.in[:n], s.out[:n], uint32(frames), Channels, Channels)
		if res != plugin.ResultOK {
			return fmt.Errorf("process callback failed: %s", res)
		}

		block := s.out[:n]
		core.ClampBlock(block)

		for i, v := range block {
			binary.LittleEndian.PutUint32(s.pending[i*bytesPerSample:], math.Float32bits(v))
		}

		s.rest = s.pending[:n*bytesPerSample]
		s.frames += frames
	}

	return err
}
