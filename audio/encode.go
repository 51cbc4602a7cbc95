// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// IntEncoder is the shape of the go-audio WAV and AIFF encoders.
type IntEncoder interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// EncoderSink is a Sink writing 16-bit blocks through an IntEncoder.
// Blocks must match the format the encoder was created with.
type EncoderSink struct {
	enc      IntEncoder
	rate     int
	channels int

	buf    goaudio.IntBuffer
	frames int64
}

func NewEncoderSink(enc IntEncoder, rate, channels int) *EncoderSink {
	return &EncoderSink{
		enc:      enc,
		rate:     rate,
		channels: channels,
		buf: goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			SourceBitDepth: 16,
		},
	}
}

func (s *EncoderSink) WriteBlock(b Block) error {
	if b.SampleRate != s.rate || b.Channels != s.channels {
		return fmt.Errorf("%w: %d Hz x%d into %d Hz x%d",
			ErrFormatChanged, b.SampleRate, b.Channels, s.rate, s.channels)
	}

	if cap(s.buf.Data) < len(b.PCM) {
		s.buf.Data = make([]int, len(b.PCM))
	}
	s.buf.Data = s.buf.Data[:len(b.PCM)]
	for i, v := range b.PCM {
		s.buf.Data[i] = int(v)
	}

	if err := s.enc.Write(&s.buf); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}
	s.frames += int64(b.Frames())

	return nil
}

// Notify ignores events; files carry no side channel.
func (s *EncoderSink) Notify(Event) {}

// Frames returns the number of sample frames written.
func (s *EncoderSink) Frames() int64 { return s.frames }

// Close finalises the file headers. It does not close the underlying
// writer.
func (s *EncoderSink) Close() error {
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}

	return nil
}
