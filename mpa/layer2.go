// SPDX-License-Identifier: EPL-2.0

package mpa

import "github.com/ik5/mpegaudio/internal/bitstream"

// layer2 decodes Layer II frames: 3 parts of 4 granules of 3 slots.
type layer2 struct {
	br    bitstream.Reader
	alloc [2][32]*quantClass
	scfsi [2][32]int
	scale [2][32][3]float32
	codes [3]int
}

// dequantLayer2 maps a code of an L level quantizer onto (-1, 1).
func dequantLayer2(levels, code int) float32 {
	return float32(2*code-(levels-1)) / float32(levels)
}

func (l *layer2) readAlloc(layout []uint8, sb int) *quantClass {
	e := layout[sb]
	code := l.br.Bits(int(e >> 4))
	q := allocRows[e&15][code]
	if q == 0 {
		return nil
	}

	return &quantClasses[q-1]
}

func (l *layer2) scaleFactor() float32 {
	return scaleFactors[l.br.Bits(6)]
}

// readCodes fills l.codes with the three sample codes of one granule.
func (l *layer2) readCodes(q *quantClass) {
	r := &l.br
	if !q.grouped {
		for i := range l.codes {
			l.codes[i] = int(r.Bits(q.bits))
		}
		return
	}

	c := int(r.Bits(q.bits))
	for i := range l.codes {
		l.codes[i] = c % q.levels
		c /= q.levels
	}
}

func (l *layer2) decode(f *frame, out *subbands) (int, error) {
	r := &l.br
	r.Reset(f.payload())

	layout, sblimit := layer2Table(f.Header)
	nch := f.Channels()
	bound := sblimit
	if nch == 2 {
		bound = min(f.jsBound(), sblimit)
	}

	for sb := 0; sb < sblimit; sb++ {
		if sb >= bound {
			l.alloc[0][sb] = l.readAlloc(layout, sb)
			l.alloc[1][sb] = l.alloc[0][sb]
			continue
		}
		for ch := 0; ch < nch; ch++ {
			l.alloc[ch][sb] = l.readAlloc(layout, sb)
		}
	}

	for sb := 0; sb < sblimit; sb++ {
		for ch := 0; ch < nch; ch++ {
			if l.alloc[ch][sb] != nil {
				l.scfsi[ch][sb] = int(r.Bits(2))
			}
		}
	}

	for sb := 0; sb < sblimit; sb++ {
		for ch := 0; ch < nch; ch++ {
			if l.alloc[ch][sb] == nil {
				continue
			}
			s := &l.scale[ch][sb]
			switch l.scfsi[ch][sb] {
			case 0:
				s[0], s[1], s[2] = l.scaleFactor(), l.scaleFactor(), l.scaleFactor()
			case 1:
				s[0] = l.scaleFactor()
				s[1], s[2] = s[0], l.scaleFactor()
			case 2:
				s[0] = l.scaleFactor()
				s[1], s[2] = s[0], s[0]
			case 3:
				s[0], s[1] = l.scaleFactor(), l.scaleFactor()
				s[2] = s[1]
			}
		}
	}

	for part := 0; part < 3; part++ {
		for gr := 0; gr < 4; gr++ {
			slot := part*12 + gr*3
			for sb := 0; sb < 32; sb++ {
				switch {
				case sb >= sblimit:
					for ch := 0; ch < nch; ch++ {
						l.zero(out, ch, slot, sb)
					}
				case sb >= bound:
					q := l.alloc[0][sb]
					if q == nil {
						l.zero(out, 0, slot, sb)
						l.zero(out, 1, slot, sb)
						continue
					}
					l.readCodes(q)
					l.emit(out, 0, slot, sb, part, q)
					l.emit(out, 1, slot, sb, part, q)
				default:
					for ch := 0; ch < nch; ch++ {
						q := l.alloc[ch][sb]
						if q == nil {
							l.zero(out, ch, slot, sb)
							continue
						}
						l.readCodes(q)
						l.emit(out, ch, slot, sb, part, q)
					}
				}
			}
		}
	}

	if err := r.Err(); err != nil {
		return 0, err
	}

	return 36, nil
}

func (l *layer2) zero(out *subbands, ch, slot, sb int) {
	out[ch][slot][sb] = 0
	out[ch][slot+1][sb] = 0
	out[ch][slot+2][sb] = 0
}

func (l *layer2) emit(out *subbands, ch, slot, sb, part int, q *quantClass) {
	sf := l.scale[ch][sb][part]
	for i, c := range l.codes {
		out[ch][slot+i][sb] = dequantLayer2(q.levels, c) * sf
	}
}
