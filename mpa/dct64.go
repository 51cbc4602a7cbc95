// SPDX-License-Identifier: EPL-2.0

package mpa

import "math"

// dctScale[h][i] = 1 / (2cos((2i+1)π/4h)), the odd-half factors of a
// 2h point DCT-II.
var dctScale [17][]float32

func init() {
	for h := 1; h <= 16; h <<= 1 {
		c := make([]float32, h)
		for i := range c {
			c[i] = float32(1 / (2 * math.Cos(float64(2*i+1)*math.Pi/float64(4*h))))
		}
		dctScale[h] = c
	}
}

// dct computes the unnormalized DCT-II
//
//	out[k] = Σ x[n] cos(π(2n+1)k / 2N)
//
// of a power of two length input with Lee's decomposition.
func dct(x, out []float32) {
	n := len(x)
	if n == 1 {
		out[0] = x[0]
		return
	}

	h := n >> 1
	var buf [64]float32
	u, v := buf[:h], buf[h:n]
	eu, ev := buf[32:32+h], buf[32+h:32+n]

	c := dctScale[h]
	for i := 0; i < h; i++ {
		a, b := x[i], x[n-1-i]
		u[i] = a + b
		v[i] = (a - b) * c[i]
	}
	dct(u, eu)
	dct(v, ev)

	for k := 0; k < h-1; k++ {
		out[2*k] = eu[k]
		out[2*k+1] = ev[k] + ev[k+1]
	}
	out[n-2] = eu[h-1]
	out[n-1] = ev[h-1]
}

// matrix fills the 64 V entries of one synthesis period from 32 subband
// samples, V[i] = Σ S[k] cos((16+i)(2k+1)π/64).
func matrix(s *[32]float32, v []float32) {
	var x [32]float32
	dct(s[:], x[:])

	for i := 0; i < 16; i++ {
		v[i] = x[16+i]
	}
	v[16] = 0
	for i := 17; i < 48; i++ {
		v[i] = -x[48-i]
	}
	v[48] = -x[0]
	for i := 49; i < 64; i++ {
		v[i] = -x[i-48]
	}
}
