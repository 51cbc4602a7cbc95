// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated PCM sources for tests. It does not
// import the audio package, so that package's own tests can use it.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// Source generates interleaved float32 PCM from a waveform function and
// satisfies audio.Source.
type Source struct {
	rate     int
	channels int
	frames   int // total frames to generate
	pos      int
	wave     func(frame, ch int) float32

	// Chunk caps the frames returned per ReadSamples call when non-zero.
	Chunk  int
	closed bool
}

func NewSource(rate, channels, frames int, wave func(frame, ch int) float32) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

func Silence(rate, channels, frames int) *Source {
	return Constant(rate, channels, frames, 0)
}

func Constant(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

// Sine generates the same tone on every channel.
func Sine(rate, channels, frames int, freq float64) *Source {
	return NewSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// Ramp generates frame/frames on channel 0 and its negation on the
// others.
func Ramp(rate, channels, frames int) *Source {
	return NewSource(rate, channels, frames, func(frame, ch int) float32 {
		v := float32(frame) / float32(frames)
		if ch > 0 {
			return -v
		}
		return v
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

// Rewind starts the waveform over.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.Chunk > 0 {
		n = min(n, s.Chunk)
	}
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

// WriteSeeker is an in-memory io.WriteSeeker for encoders that patch
// their headers on Close.
type WriteSeeker struct {
	buf []byte
	pos int
}

func (w *WriteSeeker) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	n := copy(w.buf[w.pos:], p)
	w.pos += n

	return n, nil
}

func (w *WriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(w.pos) + offset
	case io.SeekEnd:
		pos = int64(len(w.buf)) + offset
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if pos < 0 {
		return 0, errors.New("audiotest: negative position")
	}
	w.pos = int(pos)

	return pos, nil
}

// Bytes returns everything written so far.
func (w *WriteSeeker) Bytes() []byte { return w.buf }
