// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"
	"fmt"

	"github.com/ik5/mpegaudio/internal/bitstream"
)

// gains computes the requantization step of every partition entry in
// quarter powers of two. With MS stereo the 1/√2 of the sum and
// difference transform is folded in.
func (g *granuleInfo) gains(c *l3channel, ms bool, out *[39]float32) {
	lay := c.layout
	base := g.globalGain - 210
	if ms {
		base -= 2
	}
	shift := 2 << g.sfScale

	for e := range lay.widths {
		x := base
		if w := lay.window(e); w < 0 {
			sf := c.scf[e]
			if g.preflag {
				sf += pretab[lay.band(e)]
			}
			x -= shift * sf
		} else {
			x -= 8*g.subblockGain[w] + shift*c.scf[e]
		}
		out[e] = gain(x)
	}
}

// readSpectrum decodes the Huffman coded lines of a granule ending at bit
// end and requantizes them into c.xr. An over long count1 quadruple is
// dropped; big_values running past end corrupts the granule.
func (l *layer3) readSpectrum(r *bitstream.Reader, g *granuleInfo, c *l3channel, end int, ms bool) error {
	lay := c.layout
	var steps [39]float32
	g.gains(c, ms, &steps)

	e := 0
	put := func(i, v int) {
		for i >= lay.starts[e+1] {
			e++
		}
		switch {
		case v == 0:
			c.xr[i] = 0
		case v > 0:
			c.xr[i] = pow43[v] * steps[e]
		default:
			c.xr[i] = -pow43[-v] * steps[e]
		}
	}

	bv := g.bigValues * 2
	r1, r2 := g.regions(lay)
	i := 0
	for ; i < bv; i += 2 {
		sel := g.tableSelect[0]
		switch {
		case i >= r2:
			sel = g.tableSelect[2]
		case i >= r1:
			sel = g.tableSelect[1]
		}
		x, y, err := decodePair(r, sel)
		if err != nil {
			return overrun(err)
		}
		put(i, x)
		put(i+1, y)
	}
	if r.Pos() > end {
		return fmt.Errorf("%w: big_values exceed part2_3_length", ErrCorruptGranule)
	}

	for i+4 <= 576 && r.Pos() < end {
		q, err := decodeQuad(r, g.count1B)
		if err != nil {
			return overrun(err)
		}
		if r.Pos() > end {
			break
		}
		for k, v := range q {
			put(i+k, v)
		}
		i += 4
	}

	clear(c.xr[i:])
	r.SetPos(end)

	return nil
}

// overrun reports a Huffman code running off the main data as a corrupt
// granule, keeping ErrBitOverrun in the chain.
func overrun(err error) error {
	if errors.Is(err, ErrBitOverrun) {
		return fmt.Errorf("%w: %w", ErrCorruptGranule, err)
	}

	return err
}
