// SPDX-License-Identifier: EPL-2.0

package mpa

import "math"

// Layer I and II tables. All of them are built at package init and only
// read afterwards, so any number of streams may share them.

// scaleFactors[i] = 2^(1 - i/3); index 63 is not a legal code.
var scaleFactors [64]float32

// Layer I sample multipliers: 2/(2^b - 1) for b bit samples.
var layer1Mul [16]float32

func init() {
	for i := range 63 {
		scaleFactors[i] = float32(math.Exp2(1 - float64(i)/3))
	}
	for b := 2; b < 16; b++ {
		layer1Mul[b] = float32(2 / (math.Exp2(float64(b)) - 1))
	}
}

// quantClass describes one Layer II quantizer: the number of levels, whether
// three samples are packed into one code, and the code width in bits.
type quantClass struct {
	levels  int
	grouped bool
	bits    int
}

var quantClasses = [17]quantClass{
	{3, true, 5},
	{5, true, 7},
	{7, false, 3},
	{9, true, 10},
	{15, false, 4},
	{31, false, 5},
	{63, false, 6},
	{127, false, 7},
	{255, false, 8},
	{511, false, 9},
	{1023, false, 10},
	{2047, false, 11},
	{4095, false, 12},
	{8191, false, 13},
	{16383, false, 14},
	{32767, false, 15},
	{65535, false, 16},
}

// Allocation table selection (ISO 11172-3 tables B.2a-d, ISO 13818-3 B.1).
// An entry holds the subband limit in the low six bits and, above them,
// which of the subband layouts of allocLayouts applies.
const (
	allocTabA = 27 | 1<<6 // high rate, 27 subbands
	allocTabB = 30 | 1<<6 // high rate, 30 subbands
	allocTabC = 8         // low rate, 8 subbands
	allocTabD = 12        // low rate, 12 subbands
	allocTabL = 30 | 2<<6 // MPEG-2 low sampling rates
)

// bitrate class by per-channel bitrate index 1..14, [mono, stereo]
var allocRateClass = [2][14]uint8{
	{0, 0, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2},
}

// [rate class][44.1, 48, 32 kHz]
var allocTables = [3][3]uint8{
	{allocTabC, allocTabC, allocTabD},
	{allocTabA, allocTabA, allocTabA},
	{allocTabB, allocTabA, allocTabB},
}

// Per layout and subband: allocation width in the high nibble and the row
// of allocRows in the low nibble.
var allocLayouts = [3][]uint8{
	{
		0x44, 0x44,
		0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34,
	},
	{
		0x43, 0x43, 0x43,
		0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
		0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31,
		0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
	},
	{
		0x45, 0x45, 0x45, 0x45,
		0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34,
		0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24,
		0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24,
	},
}

// allocation code -> quantClasses index + 1, zero meaning no samples
var allocRows = [6][]uint8{
	{0, 1, 2, 17},
	{0, 1, 2, 3, 4, 5, 6, 17},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 17},
	{0, 1, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
	{0, 1, 2, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
}

// layer2Table returns the allocation layout and subband limit for a frame.
func layer2Table(h Header) (layout []uint8, sblimit int) {
	tab := uint8(allocTabL)
	if !h.LSF() {
		class := uint8(1) // free format
		if h.BitrateIndex > 0 {
			stereo := 0
			if h.Mode != Mono {
				stereo = 1
			}
			class = allocRateClass[stereo][h.BitrateIndex-1]
		}
		tab = allocTables[class][h.FreqIndex]
	}

	return allocLayouts[tab>>6], int(tab & 63)
}
