// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample level helpers shared by the audio
// pipeline stages.
package utils

// CubicInterpolate evaluates the Catmull-Rom spline through four
// consecutive samples at x in [0,1] between y1 and y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// CubicFrame interpolates every channel of four consecutive interleaved
// frames into dst. All slices must have the same length.
func CubicFrame(dst, y0, y1, y2, y3 []float32, x float32) {
	_ = y0[len(dst)-1]
	_ = y1[len(dst)-1]
	_ = y2[len(dst)-1]
	_ = y3[len(dst)-1]

	for c := range dst {
		dst[c] = CubicInterpolate(y0[c], y1[c], y2[c], y3[c], x)
	}
}
