// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/mpegaudio/internal/bitstream"
)

// l3Granule writes the MPEG-1 side info of one long block granule.
func l3Granule(w *bitWriter, part23, bigValues, gain, sfc int, tables [3]int) {
	w.put(uint32(part23), 12)
	w.put(uint32(bigValues), 9)
	w.put(uint32(gain), 8)
	w.put(uint32(sfc), 4)
	w.put(0, 1) // window switching
	for _, t := range tables {
		w.put(uint32(t), 5)
	}
	w.put(0, 4) // region0_count
	w.put(0, 3) // region1_count
	w.put(0, 3) // preflag, scalefac_scale, count1table_select
}

// l3ToneFrame builds a mono MPEG-1 Layer III frame whose two granules
// each carry a single positive line 0 at the given global gain.
func l3ToneFrame(mainDataBegin, gain int) []byte {
	h := mustHeader(hdrL3Mono128)
	pair := bigValueCodes[1]

	w := &bitWriter{}
	w.put(hdrL3Mono128, 32)
	w.put(uint32(mainDataBegin), 9)
	w.put(0, 5)
	w.put(0, 4)
	for range 2 {
		l3Granule(w, 3, 1, gain, 0, [3]int{1, 0, 0})
	}
	for range 2 {
		w.put(uint32(pair.codes[2]), int(pair.lens[2])) // (1, 0)
		w.put(0, 1)
	}

	return w.bytes(h.Size)
}

// l3CorruptFrame builds a mono frame whose scale factors need more bits
// than part2_3_length grants.
func l3CorruptFrame() []byte {
	h := mustHeader(hdrL3Mono128)
	w := &bitWriter{}
	w.put(hdrL3Mono128, 32)
	w.put(0, 18)
	for range 2 {
		l3Granule(w, 10, 0, 200, 15, [3]int{})
	}

	return w.bytes(h.Size)
}

func TestSfbLayouts(t *testing.T) {
	t.Parallel()

	for rate := range sfbLayouts {
		mixedEntries := 8 + 30
		if rate >= 3 {
			mixedEntries = 6 + 30
		}
		for kind, want := range []int{22, 39, mixedEntries} {
			lay := sfbLayouts[rate][kind]
			if len(lay.widths) != want {
				t.Errorf("rate %d kind %d: %d entries, want %d", rate, kind, len(lay.widths), want)
			}
			if got := lay.starts[len(lay.widths)]; got != 576 {
				t.Errorf("rate %d kind %d: lines sum to %d", rate, kind, got)
			}
		}
	}

	mixed := sfbLayouts[0][2]
	if mixed.starts[mixed.nLong] != 36 || mixed.window(7) != -1 || mixed.window(9) != 1 || mixed.band(9) != 3 {
		t.Errorf("mixed layout: short part at %d, window(9) %d, band(9) %d", mixed.starts[mixed.nLong], mixed.window(9), mixed.band(9))
	}
	if !mixed.isLastBand(37) || mixed.isLastBand(34) || mixed.prevBand(37) != 34 {
		t.Error("mixed layout top band bookkeeping")
	}
	long := sfbLayouts[0][0]
	if !long.isLastBand(21) || long.isLastBand(20) || long.prevBand(21) != 20 {
		t.Error("long layout top band bookkeeping")
	}
}

func TestGranuleInfo_Read(t *testing.T) {
	t.Parallel()

	t.Run("window switching with normal block", func(t *testing.T) {
		t.Parallel()

		w := &bitWriter{}
		w.put(0, 12+9+8+4)
		w.put(1, 1) // window switching
		w.put(0, 2) // block type 0
		var g granuleInfo
		if err := g.read(bitstream.NewReader(w.bytes(8)), false); !errors.Is(err, ErrInvalidSideInfo) {
			t.Errorf("read() error = %v, want ErrInvalidSideInfo", err)
		}
	})

	t.Run("short block", func(t *testing.T) {
		t.Parallel()

		w := &bitWriter{}
		w.put(1000, 12)
		w.put(300, 9) // capped to 288
		w.put(180, 8)
		w.put(5, 4)
		w.put(1, 1)
		w.put(blockShort, 2)
		w.put(0, 1)
		w.put(7, 5)
		w.put(9, 5)
		w.put(1, 3)
		w.put(2, 3)
		w.put(3, 3)
		w.put(0b101, 3)
		var g granuleInfo
		if err := g.read(bitstream.NewReader(w.bytes(8)), false); err != nil {
			t.Fatalf("read() error = %v", err)
		}
		if g.part23 != 1000 || g.bigValues != 288 || g.globalGain != 180 || g.sfCompress != 5 {
			t.Errorf("fields = %+v", g)
		}
		if g.blockType != blockShort || g.mixed || g.region0 != 8 {
			t.Errorf("block type %d mixed %v region0 %d", g.blockType, g.mixed, g.region0)
		}
		if g.tableSelect != [3]int{7, 9, 0} || g.subblockGain != [3]int{1, 2, 3} {
			t.Errorf("tables %v subblock gain %v", g.tableSelect, g.subblockGain)
		}
		if !g.preflag || g.sfScale != 0 || !g.count1B {
			t.Errorf("preflag %v sfScale %d count1B %v", g.preflag, g.sfScale, g.count1B)
		}

		r1, r2 := g.regions(sfbLayouts[0][1])
		if r1 != 36 || r2 != 576 {
			t.Errorf("regions() = %d, %d; want 36, 576", r1, r2)
		}
	})
}

func TestGranuleInfo_Regions(t *testing.T) {
	t.Parallel()

	lay := sfbLayouts[0][0]
	g := granuleInfo{bigValues: 200, region0: 3, region1: 2}
	r1, r2 := g.regions(lay)
	if r1 != lay.starts[4] || r2 != lay.starts[7] {
		t.Errorf("regions() = %d, %d; want %d, %d", r1, r2, lay.starts[4], lay.starts[7])
	}

	g.bigValues = 5
	if r1, r2 = g.regions(lay); r1 != 10 || r2 != 10 {
		t.Errorf("capped regions() = %d, %d; want 10, 10", r1, r2)
	}
}

func TestGranuleInfo_Gains(t *testing.T) {
	t.Parallel()

	c := &l3channel{layout: sfbLayouts[0][0]}
	c.scf[0] = 1
	c.scf[15] = 1
	g := granuleInfo{globalGain: 214, preflag: true}

	var steps [39]float32
	g.gains(c, false, &steps)
	check := func(e int, exp float64) {
		t.Helper()
		if want := math.Exp2(exp / 4); math.Abs(float64(steps[e])-want) > 1e-6*want {
			t.Errorf("entry %d = %v, want %v", e, steps[e], want)
		}
	}
	check(1, 4)
	check(0, 2)
	check(15, 4-2*(1+2))

	g.gains(c, true, &steps)
	check(1, 2)

	g.sfScale = 1
	g.gains(c, false, &steps)
	check(0, 0)

	s := &l3channel{layout: sfbLayouts[0][1]}
	sg := granuleInfo{globalGain: 210, subblockGain: [3]int{0, 1, 0}}
	sg.gains(s, false, &steps)
	for e := range 6 {
		want := 0.0
		if e%3 == 1 {
			want = -8
		}
		check(e, want)
	}
}

func TestLayer3_ReadSpectrum(t *testing.T) {
	t.Parallel()

	pair := bigValueCodes[1]
	quad := &count1CodesA
	w := &bitWriter{}
	w.put(uint32(pair.codes[2]), int(pair.lens[2])) // (1, 0)
	w.put(1, 1)
	w.put(uint32(quad.codes[0b1010]), int(quad.lens[0b1010]))
	w.put(0, 1)
	w.put(1, 1)
	end := w.n

	t.Run("big values and count1", func(t *testing.T) {
		t.Parallel()

		l := &layer3{}
		c := &l.ch[0]
		c.layout = sfbLayouts[0][0]
		for i := range c.xr {
			c.xr[i] = 9
		}
		g := &granuleInfo{bigValues: 1, globalGain: 210, tableSelect: [3]int{1, 0, 0}}
		r := bitstream.NewReader(w.bytes(8))

		if err := l.readSpectrum(r, g, c, end, false); err != nil {
			t.Fatalf("readSpectrum() error = %v", err)
		}
		want := [6]float32{-1, 0, 1, 0, -1, 0}
		for i, v := range want {
			if c.xr[i] != v {
				t.Errorf("xr[%d] = %v, want %v", i, c.xr[i], v)
			}
		}
		for i := 6; i < 576; i++ {
			if c.xr[i] != 0 {
				t.Fatalf("xr[%d] = %v, want 0", i, c.xr[i])
			}
		}
		if r.Pos() != end {
			t.Errorf("Pos() = %d, want %d", r.Pos(), end)
		}
	})

	t.Run("overlong quadruple is dropped", func(t *testing.T) {
		t.Parallel()

		l := &layer3{}
		c := &l.ch[0]
		c.layout = sfbLayouts[0][0]
		g := &granuleInfo{bigValues: 1, globalGain: 210, tableSelect: [3]int{1, 0, 0}}
		r := bitstream.NewReader(w.bytes(8))

		if err := l.readSpectrum(r, g, c, 6, false); err != nil {
			t.Fatalf("readSpectrum() error = %v", err)
		}
		if c.xr[0] != -1 || c.xr[2] != 0 || c.xr[4] != 0 {
			t.Errorf("xr[0:6] = %v", c.xr[:6])
		}
		if r.Pos() != 6 {
			t.Errorf("Pos() = %d, want 6", r.Pos())
		}
	})

	t.Run("big values past part2_3", func(t *testing.T) {
		t.Parallel()

		l := &layer3{}
		c := &l.ch[0]
		c.layout = sfbLayouts[0][0]
		g := &granuleInfo{bigValues: 1, globalGain: 210, tableSelect: [3]int{1, 0, 0}}
		r := bitstream.NewReader(w.bytes(8))

		if err := l.readSpectrum(r, g, c, 2, false); !errors.Is(err, ErrCorruptGranule) {
			t.Errorf("readSpectrum() error = %v, want ErrCorruptGranule", err)
		}
	})

	t.Run("code past the main data", func(t *testing.T) {
		t.Parallel()

		l := &layer3{}
		c := &l.ch[0]
		c.layout = sfbLayouts[0][0]
		g := &granuleInfo{bigValues: 288, globalGain: 210, tableSelect: [3]int{1, 0, 0}}
		// all zero bits decode as (1, 1) with two sign bits; the second
		// pair's sign bits lie past the single byte
		r := bitstream.NewReader([]byte{0})

		err := l.readSpectrum(r, g, c, 8, false)
		if !errors.Is(err, ErrBitOverrun) || !errors.Is(err, ErrCorruptGranule) {
			t.Errorf("readSpectrum() error = %v, want ErrCorruptGranule wrapping ErrBitOverrun", err)
		}
	})
}

func TestReorder(t *testing.T) {
	t.Parallel()

	lay := sfbLayouts[0][1]
	var xr, tmp [576]float32
	for i := range xr {
		xr[i] = float32(i)
	}
	reorder(lay, &xr, &tmp)

	// first band: width 4, windows at raw offsets 0, 4, 8
	want := []float32{0, 4, 8, 1, 5, 9, 2, 6, 10, 3, 7, 11, 12, 16, 20}
	for i, v := range want {
		if xr[i] != v {
			t.Errorf("xr[%d] = %v, want %v", i, xr[i], v)
		}
	}
}

func TestIntensityEntries(t *testing.T) {
	t.Parallel()

	t.Run("long", func(t *testing.T) {
		t.Parallel()

		lay := sfbLayouts[0][0]
		var xr [576]float32
		xr[10] = 1
		var marks [39]bool
		intensityEntries(lay, &xr, &marks)
		for e := range lay.widths {
			if want := e > 2; marks[e] != want {
				t.Errorf("marks[%d] = %v, want %v", e, marks[e], want)
			}
		}
	})

	t.Run("short windows are bounded separately", func(t *testing.T) {
		t.Parallel()

		lay := sfbLayouts[0][1]
		var xr [576]float32
		xr[lay.starts[4]] = 1 // band 1, window 1
		var marks [39]bool
		intensityEntries(lay, &xr, &marks)
		for e := range lay.widths {
			want := true
			if e == 1 || e == 4 {
				want = false
			}
			if marks[e] != want {
				t.Errorf("marks[%d] = %v, want %v", e, marks[e], want)
			}
		}
	})

	t.Run("mixed long part needs silent short part", func(t *testing.T) {
		t.Parallel()

		lay := sfbLayouts[0][2]
		var xr [576]float32
		xr[0] = 1
		xr[lay.starts[lay.nLong+2]] = 1
		var marks [39]bool
		intensityEntries(lay, &xr, &marks)
		for e := 0; e < lay.nLong; e++ {
			if marks[e] {
				t.Errorf("long entry %d marked while a short window is not silent", e)
			}
		}
		if !marks[lay.nLong] || marks[lay.nLong+2] || !marks[lay.nLong+5] {
			t.Error("short windows marked wrongly")
		}
	})
}

func newStereoLayer3(lay *sfbLayout) *layer3 {
	l := &layer3{}
	for ch := range l.ch {
		l.ch[ch].layout = lay
	}
	for i := range l.ch[0].xr {
		l.ch[0].xr[i] = 1
	}

	return l
}

func TestLayer3_Stereo(t *testing.T) {
	t.Parallel()

	lay := sfbLayouts[0][0]
	near := func(a float32, b float64) bool { return math.Abs(float64(a)-b) < 1e-5 }

	t.Run("mid side", func(t *testing.T) {
		t.Parallel()

		l := newStereoLayer3(lay)
		for i := range l.ch[1].xr {
			l.ch[1].xr[i] = 0.5
		}
		l.stereo(mustHeader(hdrL3Joint128|0x20), 0, true)
		if l.ch[0].xr[100] != 1.5 || l.ch[1].xr[100] != 0.5 {
			t.Errorf("L, R = %v, %v; want 1.5, 0.5", l.ch[0].xr[100], l.ch[1].xr[100])
		}
	})

	t.Run("intensity", func(t *testing.T) {
		t.Parallel()

		l := newStereoLayer3(lay)
		l.ch[1].scf[20] = 6
		l.ch[1].scf[21] = 0
		l.stereo(mustHeader(hdrL3Joint128|0x10), 0, false)

		if !near(l.ch[0].xr[0], 0) || !near(l.ch[1].xr[0], 1) {
			t.Errorf("position 0: L, R = %v, %v; want 0, 1", l.ch[0].xr[0], l.ch[1].xr[0])
		}
		top := lay.starts[21]
		if !near(l.ch[0].xr[top], 1) || !near(l.ch[1].xr[top], 0) {
			t.Errorf("top band: L, R = %v, %v; want 1, 0", l.ch[0].xr[top], l.ch[1].xr[top])
		}
	})

	t.Run("intensity from the top band only", func(t *testing.T) {
		t.Parallel()

		l := newStereoLayer3(lay)
		top := lay.starts[21]
		for i := range top {
			l.ch[1].xr[i] = 0.5
		}
		l.ch[1].scf[20] = 0
		l.stereo(mustHeader(hdrL3Joint128|0x10), 0, false)

		if l.ch[0].xr[top-1] != 1 || l.ch[1].xr[top-1] != 0.5 {
			t.Errorf("band 20: L, R = %v, %v; want 1, 0.5", l.ch[0].xr[top-1], l.ch[1].xr[top-1])
		}
		if !near(l.ch[0].xr[top], 0) || !near(l.ch[1].xr[top], 1) {
			t.Errorf("band 21: L, R = %v, %v; want 0, 1", l.ch[0].xr[top], l.ch[1].xr[top])
		}
	})

	t.Run("illegal position keeps stereo", func(t *testing.T) {
		t.Parallel()

		l := newStereoLayer3(lay)
		l.ch[1].scf[0] = 7
		l.stereo(mustHeader(hdrL3Joint128|0x10), 0, false)
		if l.ch[0].xr[0] != 1 || l.ch[1].xr[0] != 0 {
			t.Errorf("L, R = %v, %v; want 1, 0", l.ch[0].xr[0], l.ch[1].xr[0])
		}
	})

	t.Run("intensity under mid side", func(t *testing.T) {
		t.Parallel()

		l := newStereoLayer3(lay)
		l.stereo(mustHeader(hdrL3Joint128|0x30), 0, true)
		if !near(l.ch[0].xr[5], 0) || !near(l.ch[1].xr[5], math.Sqrt2) {
			t.Errorf("L, R = %v, %v; want 0, √2", l.ch[0].xr[5], l.ch[1].xr[5])
		}
	})

	t.Run("MPEG-2 intensity", func(t *testing.T) {
		t.Parallel()

		l := newStereoLayer3(sfbLayouts[3][0])
		l.ch[1].scf[0] = 1
		l.ch[1].scf[1] = 2
		l.stereo(mustHeader(hdrMPEG2L3|0x50), 0, false)

		io := math.Exp2(-0.25)
		if !near(l.ch[0].xr[0], io) || !near(l.ch[1].xr[0], 1) {
			t.Errorf("position 1: L, R = %v, %v", l.ch[0].xr[0], l.ch[1].xr[0])
		}
		if !near(l.ch[0].xr[6], 1) || !near(l.ch[1].xr[6], io) {
			t.Errorf("position 2: L, R = %v, %v", l.ch[0].xr[6], l.ch[1].xr[6])
		}
	})
}

func TestAntialias(t *testing.T) {
	t.Parallel()

	var xr [576]float32
	xr[17] = 1

	short := &granuleInfo{blockType: blockShort}
	antialias(short, &xr)
	if xr[17] != 1 || xr[18] != 0 {
		t.Fatal("short blocks must not be alias reduced")
	}

	long := &granuleInfo{}
	antialias(long, &xr)
	if xr[17] != aliasCS[0] || xr[18] != aliasCA[0] {
		t.Errorf("xr[17], xr[18] = %v, %v; want %v, %v", xr[17], xr[18], aliasCS[0], aliasCA[0])
	}
}

func TestLayer3_HybridSilence(t *testing.T) {
	t.Parallel()

	l := &layer3{}
	c := &l.ch[0]
	c.layout = sfbLayouts[0][1]
	var out subbands
	out[0][5][3] = 1
	l.hybrid(&granuleInfo{blockType: blockShort}, c, &out[0], 0)
	for s := range 18 {
		for sb, v := range out[0][s] {
			if v != 0 {
				t.Fatalf("out[%d][%d] = %v, want 0", s, sb, v)
			}
		}
	}
}

func TestImdct36_Window(t *testing.T) {
	t.Parallel()

	var x [18]float32
	x[0] = 1
	var out [36]float32
	imdct36(x[:], &out, blockNormal)
	for i := range 36 {
		want := math.Cos(math.Pi/72*float64(2*i+1+18)) * math.Sin(math.Pi/36*(float64(i)+0.5))
		if math.Abs(float64(out[i])-want) > 1e-5 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}
