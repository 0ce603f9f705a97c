// Package playback drives a ring modulator instance from an audio source
// and serves the result as float32 little-endian PCM.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-ringmod/dsp/signal"
)

// Source fills interleaved stereo float32 frames. It returns io.EOF once no
// more frames follow; a final short block may come with a nil error.
type Source interface {
	Fill(buf []float32) (frames int, err error)
	SampleRate() int
}

// MP3Source decodes an MP3 stream. go-mp3 always yields 16-bit little-endian
// stereo PCM.
type MP3Source struct {
	dec *mp3.Decoder
	raw []byte
}

// NewMP3Source decodes r.
func NewMP3Source(r io.Reader) (*MP3Source, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	return &MP3Source{dec: dec}, nil
}

// SampleRate returns the stream sample rate in Hz.
func (m *MP3Source) SampleRate() int { return m.dec.SampleRate() }

// Fill decodes up to len(buf)/Channels frames.
func (m *MP3Source) Fill(buf []float32) (int, error) {
	frames := len(buf) / Channels
	need := frames * Channels * 2
	if cap(m.raw) < need {
		m.raw = make([]byte, need)
	}
	raw := m.raw[:need]

	n, err := io.ReadFull(m.dec, raw)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("mp3 decode error: %w", err)
	}

	got := n / (Channels * 2)
	for i := range got * Channels {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		buf[i] = float32(s) / 32768
	}

	if got == 0 {
		return 0, io.EOF
	}

	return got, nil
}

// ToneSource plays a sine for a fixed number of frames.
type ToneSource struct {
	tone       *signal.Tone
	sampleRate int
	remaining  int
}

// NewToneSource plays tone at sampleRate for frames frames.
func NewToneSource(tone *signal.Tone, sampleRate, frames int) *ToneSource {
	return &ToneSource{tone: tone, sampleRate: sampleRate, remaining: frames}
}

func (t *ToneSource) SampleRate() int { return t.sampleRate }

func (t *ToneSource) Fill(buf []float32) (int, error) {
	if t.remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(buf)/Channels, t.remaining)
	n := t.tone.Fill(buf[:frames*Channels])
	t.remaining -= n

	return n, nil
}
