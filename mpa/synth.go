// SPDX-License-Identifier: EPL-2.0

package mpa

import "math"

const (
	synthTaps = 1024 // 16 periods of 64 V values
	synthMask = synthTaps - 1
)

// synthesizer is the polyphase synthesis filter of one channel. v is a
// ring of the last 16 matrixed periods, newest at pos.
type synthesizer struct {
	v   [synthTaps]float32
	pos int
}

func (s *synthesizer) reset() {
	clear(s.v[:])
	s.pos = 0
}

// run filters one period of 32 subband samples into 32 PCM samples written
// at pcm[0], pcm[stride], ... It returns how many samples were clipped.
func (s *synthesizer) run(sb *[32]float32, pcm []int16, stride int) int {
	s.pos = (s.pos - 64) & synthMask
	matrix(sb, s.v[s.pos:s.pos+64])

	clipped := 0
	for j := 0; j < 32; j++ {
		var sum float32
		for i := 0; i < 16; i++ {
			off := (i>>1)*128 + j
			if i&1 == 1 {
				off += 96
			}
			sum += synthWindow[j+32*i] * s.v[(s.pos+off)&synthMask]
		}

		v, c := toPCM(sum)
		pcm[j*stride] = v
		clipped += c
	}

	return clipped
}

// toPCM rounds a unit range sample to 16 bits, reporting 1 when it had to
// be clamped.
func toPCM(x float32) (int16, int) {
	f := math.Round(float64(x) * 32768)
	switch {
	case f > math.MaxInt16:
		return math.MaxInt16, 1
	case f < math.MinInt16:
		return math.MinInt16, 1
	}

	return int16(f), 0
}
