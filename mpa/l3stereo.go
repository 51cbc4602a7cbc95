// SPDX-License-Identifier: EPL-2.0

package mpa

import "math"

// stereo undoes joint stereo coding of granule gr. MS is applied over the
// whole spectrum first; intensity stereo then rewrites the partitions of
// the right channel above its last nonzero line.
func (l *layer3) stereo(h Header, gr int, ms bool) {
	intensity := h.Mode == JointStereo && h.ModeExtension&modeExtIntensity != 0
	if !ms && !intensity {
		return
	}

	left, right := &l.ch[0], &l.ch[1]
	var marks [39]bool
	if intensity {
		intensityEntries(right.layout, &right.xr, &marks)
	}

	if ms {
		for i := range left.xr {
			m, s := left.xr[i], right.xr[i]
			left.xr[i], right.xr[i] = m+s, m-s
		}
	}

	if intensity {
		l.intensity(h, left, right, &marks, ms)
	}
}

func (l *layer3) intensity(h Header, left, right *l3channel, marks *[39]bool, ms bool) {
	lay := right.layout
	for e := range lay.widths {
		if !marks[e] {
			continue
		}
		// The top band reuses the position of the band below it.
		p := e
		if lay.isLastBand(e) {
			p = lay.prevBand(e)
		}

		pos := right.scf[p]
		var k [2]float32
		if h.LSF() {
			if right.isBad[p] {
				continue
			}
			k = isRatio2[l.isScale][pos]
		} else {
			if pos >= 7 {
				continue
			}
			k = isRatio1[pos]
		}
		if ms {
			k[0] *= math.Sqrt2
			k[1] *= math.Sqrt2
		}

		for i := lay.starts[e]; i < lay.starts[e+1]; i++ {
			v := left.xr[i]
			left.xr[i] = v * k[0]
			right.xr[i] = v * k[1]
		}
	}
}

// intensityEntries marks the partition entries of a right channel that
// lie above its last nonzero line. Short windows are bounded separately;
// the long part of a mixed block joins only when every short window is
// silent.
func intensityEntries(lay *sfbLayout, xr *[576]float32, marks *[39]bool) {
	clear(marks[:])
	n := len(lay.widths)

	silent := func(e int) bool {
		for _, v := range xr[lay.starts[e]:lay.starts[e+1]] {
			if v != 0 {
				return false
			}
		}

		return true
	}

	shortSilent := true
	if lay.nLong < n {
		for w := range 3 {
			first := lay.nLong + w
			for e := first; e < n; e += 3 {
				if !silent(e) {
					first = e + 3
					shortSilent = false
				}
			}
			for e := first; e < n; e += 3 {
				marks[e] = true
			}
		}
	}
	if !shortSilent {
		return
	}

	first := 0
	for e := lay.nLong - 1; e >= 0; e-- {
		if !silent(e) {
			first = e + 1
			break
		}
	}
	for e := first; e < lay.nLong; e++ {
		marks[e] = true
	}
}
