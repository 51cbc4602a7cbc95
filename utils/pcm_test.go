// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.5, 16383},
		{2, 32767},
		{-7, -32767},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int16
		want float32
	}{
		{0, 0},
		{-32768, -1},
		{16384, 0.5},
	}

	for _, tt := range tests {
		if got := Int16ToFloat32(tt.in); got != tt.want {
			t.Errorf("Int16ToFloat32(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFloat32ToPCM16(t *testing.T) {
	t.Parallel()

	dst := make([]int16, 4)
	clipped := Float32ToPCM16(dst, []float32{0, 1.5, -0.5, -3})
	if clipped != 2 {
		t.Errorf("clipped = %d, want 2", clipped)
	}
	want := []int16{0, 32767, -16383, -32767}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestPCM16RoundTrip(t *testing.T) {
	t.Parallel()

	in := []int16{0, 100, -100, 12345, -12345}
	f := make([]float32, len(in))
	PCM16ToFloat32(f, in)

	out := make([]int16, len(in))
	Float32ToPCM16(out, f)
	for i := range in {
		if d := int(out[i]) - int(in[i]); d < -1 || d > 1 {
			t.Errorf("round trip %d -> %d", in[i], out[i])
		}
	}
}

func TestPCMConversion_ZeroAllocs(t *testing.T) {
	src := make([]float32, 1024)
	dst := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		Float32ToPCM16(dst, src)
	})
	if allocs != 0 {
		t.Errorf("Float32ToPCM16 allocated %v times, want 0", allocs)
	}
}
