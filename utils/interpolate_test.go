// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
		tolerance      float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1, 1e-6},
		{"end returns y2", 0, 1, 2, 3, 1, 2, 1e-6},
		{"linear data stays linear", 1, 2, 3, 4, 0.25, 2.25, 1e-6},
		{"constant", 0.5, 0.5, 0.5, 0.5, 0.7, 0.5, 1e-6},
		{"symmetric step", -1, -0.5, 0.5, 1, 0.5, 0, 1e-6},
		{"peak", 0.5, 0.9, 0.7, 0.3, 0.3, 0.8904, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > float64(tt.tolerance) {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCubicFrame(t *testing.T) {
	t.Parallel()

	y0 := []float32{0, 1}
	y1 := []float32{1, 2}
	y2 := []float32{2, 3}
	y3 := []float32{3, 4}
	dst := make([]float32, 2)

	CubicFrame(dst, y0, y1, y2, y3, 0.5)
	if dst[0] != 1.5 || dst[1] != 2.5 {
		t.Errorf("CubicFrame() = %v, want [1.5 2.5]", dst)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	b.ReportAllocs()

	var sink float32
	for b.Loop() {
		sink += CubicInterpolate(0.1, 0.5, -0.3, 0.2, 0.37)
	}
	_ = sink
}
