// SPDX-License-Identifier: EPL-2.0

package mpa

// hybrid runs the frequency lines of one channel granule through
// reordering, alias reduction and the IMDCT, writing 18 slots of subband
// samples from slot0.
func (l *layer3) hybrid(g *granuleInfo, c *l3channel, out *[36][32]float32, slot0 int) {
	if g.blockType == blockShort {
		reorder(c.layout, &c.xr, &l.tmp)
	}
	antialias(g, &c.xr)

	var buf [36]float32
	for sb := 0; sb < 32; sb++ {
		x := c.xr[sb*18 : sb*18+18]
		bt := g.blockType
		if g.mixed && sb < 2 {
			bt = blockNormal
		}
		if bt == blockShort {
			imdct12(x, &buf)
		} else {
			imdct36(x, &buf, bt)
		}

		ov := &c.overlap[sb]
		for t := 0; t < 18; t++ {
			v := buf[t] + ov[t]
			ov[t] = buf[t+18]
			if sb&1 == 1 && t&1 == 1 {
				v = -v
			}
			out[slot0+t][sb] = v
		}
	}
}

// reorder turns the short partitions from window-major to
// frequency-major order: line f of window w moves to 3f+w.
func reorder(lay *sfbLayout, xr, tmp *[576]float32) {
	for e := lay.nLong; e < len(lay.widths); e += 3 {
		start, w := lay.starts[e], lay.widths[e]
		for f := 0; f < w; f++ {
			for win := range 3 {
				tmp[3*f+win] = xr[start+win*w+f]
			}
		}
		copy(xr[start:start+3*w], tmp[:3*w])
	}
}

// antialias applies the alias reduction butterflies between long block
// subbands. Short blocks have none; mixed blocks only between subbands 0
// and 1.
func antialias(g *granuleInfo, xr *[576]float32) {
	bounds := 31
	if g.blockType == blockShort {
		if !g.mixed {
			return
		}
		bounds = 1
	}

	for b := 1; b <= bounds; b++ {
		for k := range 8 {
			lo, hi := b*18-1-k, b*18+k
			u, d := xr[lo], xr[hi]
			xr[lo] = u*aliasCS[k] - d*aliasCA[k]
			xr[hi] = d*aliasCS[k] + u*aliasCA[k]
		}
	}
}

func imdct36(x []float32, out *[36]float32, bt int) {
	win := &imdctWindow[bt]
	for i := range 36 {
		var s float32
		for k, v := range x[:18] {
			s += v * cos36[i][k]
		}
		out[i] = s * win[i]
	}
}

// imdct12 transforms the three interleaved short windows of a subband and
// overlaps them at offsets 6, 12 and 18.
func imdct12(x []float32, out *[36]float32) {
	clear(out[:])
	win := &imdctWindow[blockShort]
	for w := range 3 {
		for i := range 12 {
			var s float32
			for k := range 6 {
				s += x[3*k+w] * cos12[i][k]
			}
			out[6+6*w+i] += s * win[i]
		}
	}
}
