// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"fmt"

	"github.com/ik5/mpegaudio/internal/bitstream"
)

// layer1 decodes Layer I frames: 12 slots of 32 subband samples.
type layer1 struct {
	br    bitstream.Reader
	alloc [2][32]int
	scale [2][32]int
}

// dequantLayer1 reconstructs a sample of alloc+1 bits with scale factor
// index sf. An allocation of zero is silence.
func dequantLayer1(alloc, code, sf int) float32 {
	if alloc == 0 {
		return 0
	}

	return float32((-1<<alloc)+code+1) * layer1Mul[alloc+1] * scaleFactors[sf]
}

func (l *layer1) decode(f *frame, out *subbands) (int, error) {
	r := &l.br
	r.Reset(f.payload())

	nch := f.Channels()
	bound := 32
	if nch == 2 {
		bound = f.jsBound()
	}

	for sb := 0; sb < 32; sb++ {
		for ch := 0; ch < nch; ch++ {
			if sb >= bound && ch == 1 {
				l.alloc[1][sb] = l.alloc[0][sb]
				continue
			}
			a := int(r.Bits(4))
			if a == 15 {
				return 0, fmt.Errorf("%w: layer I allocation 15", ErrInvalidSideInfo)
			}
			l.alloc[ch][sb] = a
		}
	}

	for sb := 0; sb < 32; sb++ {
		for ch := 0; ch < nch; ch++ {
			if l.alloc[ch][sb] != 0 {
				l.scale[ch][sb] = int(r.Bits(6))
			}
		}
	}

	for s := 0; s < 12; s++ {
		for sb := 0; sb < 32; sb++ {
			a := l.alloc[0][sb]
			if sb >= bound {
				code := 0
				if a != 0 {
					code = int(r.Bits(a + 1))
				}
				out[0][s][sb] = dequantLayer1(a, code, l.scale[0][sb])
				out[1][s][sb] = dequantLayer1(a, code, l.scale[1][sb])
				continue
			}
			for ch := 0; ch < nch; ch++ {
				a = l.alloc[ch][sb]
				code := 0
				if a != 0 {
					code = int(r.Bits(a + 1))
				}
				out[ch][s][sb] = dequantLayer1(a, code, l.scale[ch][sb])
			}
		}
	}

	if err := r.Err(); err != nil {
		return 0, err
	}

	return 12, nil
}
