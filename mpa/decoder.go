// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"fmt"
	"log/slog"
)

// subbands holds up to 36 slots of 32 subband samples per channel, the
// output of any layer for one frame.
type subbands [2][36][32]float32

// decoder turns frames of a locked stream into interleaved PCM.
type decoder struct {
	l1 layer1
	l2 layer2
	l3 layer3

	synth [2]synthesizer
	sb    subbands
	mix   [32]float32
	pcm   []int16

	opts  Options
	stats *Stats
	log   *slog.Logger
}

func newDecoder(opts Options, stats *Stats) *decoder {
	d := &decoder{opts: opts, stats: stats, log: opts.Logger}
	d.l3.stats = stats
	d.l3.log = opts.Logger

	return d
}

// outChannels returns the number of PCM channels produced for h.
func (d *decoder) outChannels(h Header) int {
	if h.Channels() == 1 || d.opts.Mono || d.opts.Channel != BothChannels {
		return 1
	}

	return 2
}

// reset drops all history: synthesis state, IMDCT overlap and the bit
// reservoir.
func (d *decoder) reset() {
	d.synth[0].reset()
	d.synth[1].reset()
	d.l3.reset()
}

func (d *decoder) layer(f *frame) (int, error) {
	switch f.Layer {
	case 1:
		return d.l1.decode(f, &d.sb)
	case 2:
		return d.l2.decode(f, &d.sb)
	case 3:
		return d.l3.decode(f, &d.sb)
	}

	return 0, fmt.Errorf("%w: %d", ErrUnsupportedLayer, f.Layer)
}

// decodeFrame decodes f into PCM. A frame that cannot be decoded yields
// one frame of silence so the timeline is kept. The returned slice is
// reused by the next call.
func (d *decoder) decodeFrame(f *frame) []int16 {
	if f.recovered {
		d.l3.res.reset()
	}

	slots, err := d.layer(f)
	if err != nil {
		d.log.Debug("mpa: frame rejected", "offset", f.offset, "err", err)
		d.stats.CorruptFrames++
		slots = f.SamplesPerFrame() / 32
		for ch := range d.sb {
			clear(d.sb[ch][:slots])
		}
	}

	nch := f.Channels()
	out := d.outChannels(f.Header)
	n := slots * 32 * out
	if cap(d.pcm) < n {
		d.pcm = make([]int16, 36*32*2)
	}
	d.pcm = d.pcm[:n]

	clipped := 0
	for s := 0; s < slots; s++ {
		switch {
		case out == 2:
			clipped += d.synth[0].run(&d.sb[0][s], d.pcm[s*64:], 2)
			clipped += d.synth[1].run(&d.sb[1][s], d.pcm[s*64+1:], 2)
		case nch == 2 && d.opts.Channel == RightOnly:
			clipped += d.synth[0].run(&d.sb[1][s], d.pcm[s*32:], 1)
		case nch == 2 && d.opts.Channel == BothChannels:
			for i := range d.mix {
				d.mix[i] = (d.sb[0][s][i] + d.sb[1][s][i]) * 0.5
			}
			clipped += d.synth[0].run(&d.mix, d.pcm[s*32:], 1)
		default:
			clipped += d.synth[0].run(&d.sb[0][s], d.pcm[s*32:], 1)
		}
	}
	d.stats.Clipped += clipped

	return d.pcm
}
