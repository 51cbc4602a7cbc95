// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/mpegaudio/audio"
)

// Writer is an audio.Sink producing a 16-bit PCM WAV file. Close must be
// called to finish the headers.
type Writer struct {
	*audio.EncoderSink
}

func NewWriter(w io.WriteSeeker, sampleRate, channels int) *Writer {
	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	return &Writer{EncoderSink: audio.NewEncoderSink(enc, sampleRate, channels)}
}

// WriteWAV16 writes interleaved samples as a complete WAV file.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	wr := NewWriter(w, sampleRate, channels)
	if len(samples) > 0 {
		err := wr.WriteBlock(audio.Block{PCM: samples, SampleRate: sampleRate, Channels: channels})
		if err != nil {
			return err
		}
	}

	return wr.Close()
}
