// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/mpegaudio/audio"
)

// Writer is an audio.Sink producing a 16-bit AIFF file. Close patches the
// COMM and SSND chunk sizes.
type Writer struct {
	*audio.EncoderSink
}

func NewWriter(w io.WriteSeeker, sampleRate, channels int) *Writer {
	enc := goaiff.NewEncoder(w, sampleRate, 16, channels)

	return &Writer{EncoderSink: audio.NewEncoderSink(enc, sampleRate, channels)}
}
