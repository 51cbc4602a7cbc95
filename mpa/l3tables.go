// SPDX-License-Identifier: EPL-2.0

package mpa

import "math"

// Scale factor band widths by rate (ISO 11172-3 table B.8, ISO 13818-3
// table B.2). 11025 and 12000 Hz share the 16000 Hz layout.
var (
	sfbLong = [9][22]int{
		{4, 4, 4, 4, 4, 4, 6, 6, 8, 8, 10, 12, 16, 20, 24, 28, 34, 42, 50, 54, 76, 158},
		{4, 4, 4, 4, 4, 4, 6, 6, 6, 8, 10, 12, 16, 18, 22, 28, 34, 40, 46, 54, 54, 192},
		{4, 4, 4, 4, 4, 4, 6, 6, 8, 10, 12, 16, 20, 24, 30, 38, 46, 56, 68, 84, 102, 26},
		{6, 6, 6, 6, 6, 6, 8, 10, 12, 14, 16, 20, 24, 28, 32, 38, 46, 52, 60, 68, 58, 54},
		{6, 6, 6, 6, 6, 6, 8, 10, 12, 14, 16, 18, 22, 26, 32, 38, 46, 54, 62, 70, 76, 36},
		{6, 6, 6, 6, 6, 6, 8, 10, 12, 14, 16, 20, 24, 28, 32, 38, 46, 52, 60, 68, 58, 54},
		{6, 6, 6, 6, 6, 6, 8, 10, 12, 14, 16, 20, 24, 28, 32, 38, 46, 52, 60, 68, 58, 54},
		{6, 6, 6, 6, 6, 6, 8, 10, 12, 14, 16, 20, 24, 28, 32, 38, 46, 52, 60, 68, 58, 54},
		{12, 12, 12, 12, 12, 12, 16, 20, 24, 28, 32, 40, 48, 56, 64, 76, 90, 2, 2, 2, 2, 2},
	}
	sfbShort = [9][13]int{
		{4, 4, 4, 4, 6, 8, 10, 12, 14, 18, 22, 30, 56},
		{4, 4, 4, 4, 6, 6, 10, 12, 14, 16, 20, 26, 66},
		{4, 4, 4, 4, 6, 8, 12, 16, 20, 26, 34, 42, 12},
		{4, 4, 4, 6, 6, 8, 10, 14, 18, 26, 32, 42, 18},
		{4, 4, 4, 6, 8, 10, 12, 14, 18, 24, 32, 44, 12},
		{4, 4, 4, 6, 8, 10, 12, 14, 18, 24, 30, 40, 18},
		{4, 4, 4, 6, 8, 10, 12, 14, 18, 24, 30, 40, 18},
		{4, 4, 4, 6, 8, 10, 12, 14, 18, 24, 30, 40, 18},
		{8, 8, 8, 12, 16, 20, 24, 28, 36, 2, 2, 2, 26},
	}
)

// pretab is added to long block scale factors when preflag is set.
var pretab = [22]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0}

// MPEG-1 scalefac_compress -> slen1, slen2
var slenTable = [2][16]int{
	{0, 0, 0, 0, 3, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4},
	{0, 1, 2, 3, 0, 1, 2, 3, 1, 2, 3, 1, 2, 3, 2, 3},
}

// MPEG-1 long block scfsi groups, as flat entry ranges.
var scfsiGroups = [4][2]int{{0, 6}, {6, 11}, {11, 16}, {16, 21}}

// MPEG-2 scale factor counts per group, [block kind][row][group]; block
// kind is 0 long, 1 short, 2 mixed.
var lsfSfbCounts = [3][6][4]int{
	{{6, 5, 5, 5}, {6, 5, 7, 3}, {11, 10, 0, 0}, {7, 7, 7, 0}, {6, 6, 6, 3}, {8, 8, 5, 0}},
	{{9, 9, 9, 9}, {9, 9, 12, 6}, {18, 18, 0, 0}, {12, 12, 12, 0}, {12, 9, 9, 6}, {15, 12, 9, 0}},
	{{6, 9, 9, 9}, {6, 9, 12, 6}, {15, 18, 0, 0}, {6, 15, 12, 0}, {6, 12, 9, 6}, {6, 18, 9, 0}},
}

// MPEG-2 scalefac_compress decoding. Each entry packs four 3 bit slen
// values, the lsfSfbCounts row in bits 12-14 and preflag in bit 15.
var (
	lsfSlen       [512]uint16 // normal channels
	lsfSlenStereo [256]uint16 // right channel under intensity stereo
)

func init() {
	for i := range 5 {
		for j := range 5 {
			for k := range 4 {
				for l := range 4 {
					lsfSlen[l+k*4+j*16+i*80] = uint16(i | j<<3 | k<<6 | l<<9)
				}
			}
		}
	}
	for i := range 5 {
		for j := range 5 {
			for k := range 4 {
				lsfSlen[400+k+j*4+i*20] = uint16(i | j<<3 | k<<6 | 1<<12)
			}
		}
	}
	for i := range 4 {
		for j := range 3 {
			lsfSlen[500+j+i*3] = uint16(i | j<<3 | 2<<12 | 1<<15)
		}
	}

	for i := range 5 {
		for j := range 6 {
			for k := range 6 {
				lsfSlenStereo[k+j*6+i*36] = uint16(i | j<<3 | k<<6 | 3<<12)
			}
		}
	}
	for i := range 4 {
		for j := range 4 {
			for k := range 4 {
				lsfSlenStereo[180+k+j*4+i*16] = uint16(i | j<<3 | k<<6 | 4<<12)
			}
		}
	}
	for i := range 4 {
		for j := range 3 {
			lsfSlenStereo[244+j+i*3] = uint16(i | j<<3 | 5<<12)
		}
	}
}

// sfbLayout lists the scale factor partitions of a granule in bitstream
// order: nLong long bands first, then short bands from shortBand0 with
// their three windows adjacent.
type sfbLayout struct {
	widths     []int
	starts     []int // first line of each entry, plus 576
	nLong      int
	shortBand0 int
}

// window returns the short window of entry e, or -1 for a long band.
func (l *sfbLayout) window(e int) int {
	if e < l.nLong {
		return -1
	}

	return (e - l.nLong) % 3
}

// band returns the long or short band index of entry e.
func (l *sfbLayout) band(e int) int {
	if e < l.nLong {
		return e
	}

	return l.shortBand0 + (e-l.nLong)/3
}

// isLastBand reports whether entry e is the top long band or the top
// short band of its window. Those carry no scale factor of their own.
func (l *sfbLayout) isLastBand(e int) bool {
	if l.nLong == len(l.widths) {
		return e == len(l.widths)-1
	}

	return e >= len(l.widths)-3
}

// prevBand returns the entry one band below e in the same window.
func (l *sfbLayout) prevBand(e int) int {
	if e < l.nLong {
		return e - 1
	}

	return e - 3
}

var sfbLayouts [9][3]*sfbLayout // [rate][long, short, mixed]

func newShortLayout(rate, nLong, band0 int) *sfbLayout {
	l := &sfbLayout{nLong: nLong, shortBand0: band0}
	for i := 0; i < nLong; i++ {
		l.widths = append(l.widths, sfbLong[rate][i])
	}
	for b := band0; b < 13; b++ {
		w := sfbShort[rate][b]
		l.widths = append(l.widths, w, w, w)
	}

	return l
}

func init() {
	for rate := range sfbLayouts {
		long := &sfbLayout{widths: sfbLong[rate][:], nLong: 22}
		mixedLong := 8
		if rate >= 3 {
			mixedLong = 6
		}
		sfbLayouts[rate] = [3]*sfbLayout{
			long,
			newShortLayout(rate, 0, 0),
			newShortLayout(rate, mixedLong, 3),
		}
		for _, l := range sfbLayouts[rate] {
			pos := 0
			for _, w := range l.widths {
				l.starts = append(l.starts, pos)
				pos += w
			}
			l.starts = append(l.starts, pos)
		}
	}
}

// Dequantization tables.
const (
	pow43Size    = 8207 // 15 + 2^13 - 1 + 1
	gainMinExp   = -512
	gainTableLen = 640
)

var (
	pow43     [pow43Size]float32
	gainTable [gainTableLen]float32 // 2^(e/4) for e in [gainMinExp, gainMinExp+gainTableLen)
)

func init() {
	for i := range pow43 {
		pow43[i] = float32(math.Pow(float64(i), 4.0/3.0))
	}
	for i := range gainTable {
		gainTable[i] = float32(math.Exp2(float64(i+gainMinExp) / 4))
	}
}

// gain returns 2^(e/4), flushing tiny values to zero.
func gain(e int) float32 {
	i := e - gainMinExp
	switch {
	case i < 0:
		return 0
	case i >= gainTableLen:
		return gainTable[gainTableLen-1]
	}

	return gainTable[i]
}

// Intensity stereo ratios. MPEG-1 positions 0..6 map to tan(p*π/12).
var (
	isRatio1 [7][2]float32
	isRatio2 [2][32][2]float32 // [intensity_scale][position][left, right]
)

func init() {
	for p := range 7 {
		if p == 6 {
			isRatio1[p] = [2]float32{1, 0}
			continue
		}
		t := math.Tan(float64(p) * math.Pi / 12)
		isRatio1[p] = [2]float32{float32(t / (1 + t)), float32(1 / (1 + t))}
	}

	for scale := range 2 {
		io := math.Exp2(-0.25 * float64(scale+1))
		for p := range 32 {
			l, r := 1.0, 1.0
			switch {
			case p == 0:
			case p&1 == 1:
				l = math.Pow(io, float64(p+1)/2)
			default:
				r = math.Pow(io, float64(p)/2)
			}
			isRatio2[scale][p] = [2]float32{float32(l), float32(r)}
		}
	}
}

// Alias reduction butterflies (ISO 11172-3 table B.9).
var aliasCS, aliasCA [8]float32

// IMDCT windows per block type and cosine tables.
var (
	imdctWindow [4][36]float32
	cos36       [36][18]float32
	cos12       [12][6]float32
)

func init() {
	ci := [8]float64{-0.6, -0.535, -0.33, -0.185, -0.095, -0.041, -0.0142, -0.0037}
	for i, c := range ci {
		sq := math.Sqrt(1 + c*c)
		aliasCS[i] = float32(1 / sq)
		aliasCA[i] = float32(c / sq)
	}

	for i := range 36 {
		imdctWindow[0][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := range 18 {
		imdctWindow[1][i] = imdctWindow[0][i]
		imdctWindow[3][i+18] = imdctWindow[0][i+18]
	}
	for i := 18; i < 24; i++ {
		imdctWindow[1][i] = 1
	}
	for i := 24; i < 30; i++ {
		imdctWindow[1][i] = float32(math.Sin(math.Pi / 12 * (float64(i-18) + 0.5)))
	}
	for i := 6; i < 12; i++ {
		imdctWindow[3][i] = float32(math.Sin(math.Pi / 12 * (float64(i-6) + 0.5)))
	}
	for i := 12; i < 18; i++ {
		imdctWindow[3][i] = 1
	}
	for i := range 12 {
		imdctWindow[2][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5)))
	}

	for i := range 36 {
		for k := range 18 {
			cos36[i][k] = float32(math.Cos(math.Pi / 72 * float64((2*i+1+18)*(2*k+1))))
		}
	}
	for i := range 12 {
		for k := range 6 {
			cos12[i][k] = float32(math.Cos(math.Pi / 24 * float64((2*i+1+6)*(2*k+1))))
		}
	}
}
