// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mpegaudio/utils"
)

// Converter changes the sample rate and channel count of a Source.
// Channels are mapped first: many to one averages, one to many copies,
// anything else picks input channel c modulo the input count. Rates are
// converted with Catmull-Rom interpolation, and downsampling runs a
// one-pole low-pass over the input first.
type Converter struct {
	src   Source
	inCh  int
	outCh int
	rate  int
	// An output frame k sits at input time k*srcRate/rate.
	srcRate int64

	in  []float32
	buf []float32 // mapped frames from index base on
	// base is the input frame index of buf[0].
	base int
	// low is the oldest input frame still needed.
	low int
	k   int64 // next output frame
	eof bool
	err error

	lowpass bool
	state   []float32
	primed  bool
}

// NewConverter wraps src. A rate or channels of zero keeps the source's.
func NewConverter(src Source, rate, channels int) *Converter {
	if rate <= 0 {
		rate = src.SampleRate()
	}
	if channels <= 0 {
		channels = src.Channels()
	}

	inCh := src.Channels()
	n := max(src.BufSize(), 1024)
	n -= n % inCh

	c := &Converter{
		src:     src,
		inCh:    inCh,
		outCh:   channels,
		rate:    rate,
		srcRate: int64(src.SampleRate()),
		in:      make([]float32, n),
		lowpass: src.SampleRate() > rate,
		state:   make([]float32, channels),
	}
	return c
}

func (c *Converter) SampleRate() int { return c.rate }
func (c *Converter) Channels() int   { return c.outCh }
func (c *Converter) BufSize() int    { return c.src.BufSize() }

func (c *Converter) Close() error {
	if err := c.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// frames returns how many input frames have been read so far.
func (c *Converter) frames() int { return c.base + len(c.buf)/c.outCh }

// fill reads the next chunk of input, dropping frames below c.low.
func (c *Converter) fill() {
	if d := c.low - c.base; d > 0 {
		d = min(d, len(c.buf)/c.outCh)
		c.buf = append(c.buf[:0], c.buf[d*c.outCh:]...)
		c.base += d
	}

	n, err := c.src.ReadSamples(c.in)
	for f := 0; f+c.inCh <= n; f += c.inCh {
		c.buf = c.mapFrame(c.buf, c.in[f:f+c.inCh])
	}

	switch {
	case errors.Is(err, io.EOF):
		c.eof = true
	case err != nil:
		c.eof, c.err = true, err
	case n == 0:
		c.eof = true
	}
}

func (c *Converter) mapFrame(dst, in []float32) []float32 {
	start := len(dst)
	switch {
	case c.outCh == c.inCh:
		dst = append(dst, in...)
	case c.outCh == 1:
		var sum float32
		for _, v := range in {
			sum += v
		}
		dst = append(dst, sum/float32(c.inCh))
	default:
		for ch := range c.outCh {
			dst = append(dst, in[ch%c.inCh])
		}
	}

	if c.lowpass {
		out := dst[start:]
		if !c.primed {
			copy(c.state, out)
			c.primed = true
		}
		for ch, v := range out {
			c.state[ch] = 0.5*v + 0.5*c.state[ch]
			out[ch] = c.state[ch]
		}
	}

	return dst
}

// frame returns mapped input frame i, clamped to the frames available.
func (c *Converter) frame(i, n int) []float32 {
	i = max(min(i, n-1), 0)
	off := (i - c.base) * c.outCh

	return c.buf[off : off+c.outCh]
}

// ReadSamples produces interleaved samples at the target rate. len(dst)
// must be a multiple of Channels().
func (c *Converter) ReadSamples(dst []float32) (int, error) {
	if len(dst)%c.outCh != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		t := c.k * c.srcRate
		i := int(t / int64(c.rate))
		x := float32(t%int64(c.rate)) / float32(c.rate)
		for !c.eof && c.frames() <= i+2 {
			c.fill()
		}

		n := c.frames()
		if i >= n {
			if c.err != nil {
				return written, fmt.Errorf("%w", c.err)
			}

			return written, io.EOF
		}

		utils.CubicFrame(dst[written:written+c.outCh],
			c.frame(i-1, n), c.frame(i, n), c.frame(i+1, n), c.frame(i+2, n),
			x)

		written += c.outCh
		c.k++
		c.low = i - 1
	}

	return written, nil
}
