// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"fmt"
	"log/slog"

	"github.com/ik5/mpegaudio/internal/bitstream"
)

// Layer III block types.
const (
	blockNormal = 0
	blockStart  = 1
	blockShort  = 2
	blockStop   = 3
)

// granuleInfo is the side info of one channel in one granule.
type granuleInfo struct {
	part23       int
	bigValues    int
	globalGain   int
	sfCompress   int
	windowSwitch bool
	blockType    int
	mixed        bool
	tableSelect  [3]int
	subblockGain [3]int
	region0      int
	region1      int
	preflag      bool
	sfScale      int
	count1B      bool
}

func (g *granuleInfo) read(r *bitstream.Reader, lsf bool) error {
	g.part23 = int(r.Bits(12))
	g.bigValues = min(int(r.Bits(9)), 288)
	g.globalGain = int(r.Bits(8))
	if lsf {
		g.sfCompress = int(r.Bits(9))
	} else {
		g.sfCompress = int(r.Bits(4))
	}

	g.windowSwitch = r.Flag()
	if g.windowSwitch {
		g.blockType = int(r.Bits(2))
		g.mixed = r.Flag()
		g.tableSelect = [3]int{int(r.Bits(5)), int(r.Bits(5)), 0}
		for w := range g.subblockGain {
			g.subblockGain[w] = int(r.Bits(3))
		}
		if g.blockType == blockNormal {
			return fmt.Errorf("%w: window switching with a normal block", ErrInvalidSideInfo)
		}
		g.mixed = g.mixed && g.blockType == blockShort
		g.region0, g.region1 = 7, 36
		if g.blockType == blockShort && !g.mixed {
			g.region0 = 8
		}
	} else {
		g.blockType = blockNormal
		g.mixed = false
		for i := range g.tableSelect {
			g.tableSelect[i] = int(r.Bits(5))
		}
		g.subblockGain = [3]int{}
		g.region0 = int(r.Bits(4))
		g.region1 = int(r.Bits(3))
	}

	g.preflag = false
	if !lsf {
		g.preflag = r.Flag()
	}
	g.sfScale = int(r.Bits(1))
	g.count1B = r.Flag()

	return nil
}

// layout returns the scale factor partition of the granule.
func (g *granuleInfo) layout(h Header) *sfbLayout {
	l := &sfbLayouts[h.FreqIndex]
	switch {
	case g.blockType != blockShort:
		return l[0]
	case g.mixed:
		return l[2]
	}

	return l[1]
}

// regions returns the first lines of big_values regions 1 and 2.
func (g *granuleInfo) regions(lay *sfbLayout) (int, int) {
	n := len(lay.widths)
	r1 := lay.starts[min(g.region0+1, n)]
	r2 := 576
	if !g.windowSwitch {
		r2 = lay.starts[min(g.region0+g.region1+2, n)]
	}
	bv := g.bigValues * 2

	return min(r1, bv), min(r2, bv)
}

type sideInfo struct {
	mainDataBegin int
	scfsi         [2][4]bool
	gr            [2][2]granuleInfo
}

// l3channel is the per channel state of the Layer III decoder.
type l3channel struct {
	layout *sfbLayout
	scf    [39]int
	// isBad marks MPEG-2 intensity positions that hold the illegal
	// maximum value for their field width.
	isBad   [39]bool
	xr      [576]float32
	overlap [32][18]float32
}

// layer3 decodes Layer III frames: 1 or 2 granules of 18 slots.
type layer3 struct {
	br      bitstream.Reader
	res     reservoir
	si      sideInfo
	ch      [2]l3channel
	isScale int
	tmp     [576]float32

	stats *Stats
	log   *slog.Logger
}

func (l *layer3) reset() {
	l.res.reset()
	for i := range l.ch {
		clear(l.ch[i].overlap[:])
	}
}

func (l *layer3) readSideInfo(h Header, b []byte) error {
	r := &l.br
	r.Reset(b)
	si := &l.si
	nch := h.Channels()

	ngr := 2
	if h.LSF() {
		ngr = 1
		si.mainDataBegin = int(r.Bits(8))
		r.Skip(nch)
	} else {
		si.mainDataBegin = int(r.Bits(9))
		if nch == 1 {
			r.Skip(5)
		} else {
			r.Skip(3)
		}
		for ch := 0; ch < nch; ch++ {
			for i := range si.scfsi[ch] {
				si.scfsi[ch][i] = r.Flag()
			}
		}
	}

	for gr := 0; gr < ngr; gr++ {
		for ch := 0; ch < nch; ch++ {
			if err := si.gr[gr][ch].read(r, h.LSF()); err != nil {
				return err
			}
		}
	}

	return r.Err()
}

func (l *layer3) decode(f *frame, out *subbands) (int, error) {
	h := f.Header
	nch := h.Channels()
	ngr := 2
	if h.LSF() {
		ngr = 1
	}

	p := f.payload()
	side := h.SideInfoSize()
	main := p[side:]
	if err := l.readSideInfo(h, p[:side]); err != nil {
		l.res.store(main)
		return 0, err
	}

	data, err := l.res.mainData(l.si.mainDataBegin, main)
	l.res.store(main)
	if err != nil {
		l.log.Debug("mpa: reservoir underflow", "offset", f.offset, "err", err)
		l.stats.SkippedGranules += ngr * nch
		for gr := 0; gr < ngr; gr++ {
			for ch := 0; ch < nch; ch++ {
				g := &l.si.gr[gr][ch]
				c := &l.ch[ch]
				c.layout = g.layout(h)
				clear(c.xr[:])
				l.hybrid(g, c, &out[ch], gr*18)
			}
		}

		return ngr * 18, nil
	}

	ms := h.Mode == JointStereo && h.ModeExtension&modeExtMS != 0
	pos := 0
	for gr := 0; gr < ngr; gr++ {
		for ch := 0; ch < nch; ch++ {
			g := &l.si.gr[gr][ch]
			c := &l.ch[ch]
			start := pos
			pos += g.part23
			if err := l.readGranule(data, h, gr, ch, start, pos, ms); err != nil {
				l.log.Debug("mpa: corrupt granule", "offset", f.offset, "granule", gr, "channel", ch, "err", err)
				l.stats.CorruptGranules++
				clear(c.xr[:])
			}
		}
		if nch == 2 {
			l.stereo(h, gr, ms)
		}
		for ch := 0; ch < nch; ch++ {
			l.hybrid(&l.si.gr[gr][ch], &l.ch[ch], &out[ch], gr*18)
		}
	}

	return ngr * 18, nil
}

// readGranule decodes the part2_3 bits of one channel granule occupying
// bits [start, end) of the main data.
func (l *layer3) readGranule(data []byte, h Header, gr, ch, start, end int, ms bool) error {
	g := &l.si.gr[gr][ch]
	c := &l.ch[ch]
	c.layout = g.layout(h)

	r := &l.br
	r.Reset(data)
	if end > r.Len() {
		return fmt.Errorf("%w: part2_3 ends past main data", ErrCorruptGranule)
	}
	r.SetPos(start)

	if h.LSF() {
		intensity := ch == 1 && h.Mode == JointStereo && h.ModeExtension&modeExtIntensity != 0
		l.readScaleFactorsLSF(r, g, c, intensity)
	} else {
		l.readScaleFactors(r, g, c, gr, l.si.scfsi[ch])
	}
	if r.Pos() > end {
		return fmt.Errorf("%w: scale factors exceed part2_3_length", ErrCorruptGranule)
	}

	return l.readSpectrum(r, g, c, end, ms)
}

func (l *layer3) readScaleFactors(r *bitstream.Reader, g *granuleInfo, c *l3channel, gr int, scfsi [4]bool) {
	s1, s2 := int(slenTable[0][g.sfCompress]), int(slenTable[1][g.sfCompress])
	n := len(c.layout.widths)
	clear(c.isBad[:])

	if g.blockType == blockShort {
		n1 := 18
		if g.mixed {
			n1 = 17
		}
		e := 0
		for ; e < n1; e++ {
			c.scf[e] = int(r.Bits(s1))
		}
		for ; e < n1+18; e++ {
			c.scf[e] = int(r.Bits(s2))
		}
		clear(c.scf[e:n])

		return
	}

	for i, rg := range scfsiGroups {
		if gr == 1 && scfsi[i] {
			continue
		}
		bits := s1
		if i >= 2 {
			bits = s2
		}
		for e := rg[0]; e < rg[1]; e++ {
			c.scf[e] = int(r.Bits(bits))
		}
	}
	c.scf[21] = 0
}

func (l *layer3) readScaleFactorsLSF(r *bitstream.Reader, g *granuleInfo, c *l3channel, intensity bool) {
	var slen uint16
	if intensity {
		slen = lsfSlenStereo[g.sfCompress>>1]
		l.isScale = g.sfCompress & 1
	} else {
		slen = lsfSlen[g.sfCompress]
	}
	g.preflag = slen>>15 == 1

	kind := 0
	if g.blockType == blockShort {
		kind = 1
		if g.mixed {
			kind = 2
		}
	}
	counts := lsfSfbCounts[kind][slen>>12&7]

	e := 0
	for i, cnt := range counts {
		bits := int(slen>>(3*i)) & 7
		for range cnt {
			v := int(r.Bits(bits))
			c.scf[e] = v
			c.isBad[e] = intensity && bits > 0 && v == 1<<bits-1
			e++
		}
	}
	n := len(c.layout.widths)
	clear(c.scf[e:n])
	clear(c.isBad[e:n])
}
