// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"
	"io"

	"github.com/go-audio/riff"
)

// WAVE format tags that carry MPEG audio frames in the data chunk.
const (
	waveFormatMPEG       = 0x0050
	waveFormatMPEGLayer3 = 0x0055
)

var errNotMPEGWave = errors.New("mpa: RIFF/WAVE does not carry MPEG audio")

// countingReader tracks how far the RIFF parser has read so chunk
// payloads can be mapped back to stream offsets.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}

// unwrapRIFF locates the data chunk of a RIFF/WAVE file holding MPEG
// audio. It returns the offset and length of the chunk payload relative
// to base. ok is false when the stream is not RIFF at all.
func unwrapRIFF(r io.ReadSeeker, base int64) (off, n int64, ok bool, err error) {
	if _, err := r.Seek(base, io.SeekStart); err != nil {
		return 0, 0, false, err
	}

	cr := &countingReader{r: r}
	p := riff.New(cr)
	if err := p.ParseHeaders(); err != nil {
		return 0, 0, false, nil
	}
	if p.Format != riff.WavFormatID {
		return 0, 0, false, nil
	}

	formatOK := false
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, 0, true, errNotMPEGWave
		}

		switch ch.ID {
		case riff.FmtID:
			var tag uint16
			if err := ch.ReadLE(&tag); err != nil {
				return 0, 0, true, errNotMPEGWave
			}
			formatOK = tag == waveFormatMPEG || tag == waveFormatMPEGLayer3
		case riff.DataFormatID:
			if !formatOK {
				return 0, 0, true, errNotMPEGWave
			}

			return base + cr.n, int64(ch.Size), true, nil
		}

		ch.Drain()
	}
}
