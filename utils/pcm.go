// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a sample in [-1,1] to 16-bit PCM, clamping out
// of range input.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}

// Int16ToFloat32 maps 16-bit PCM onto [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// Float32ToPCM16 converts src into dst and returns how many samples had
// to be clamped. dst must be at least as long as src.
func Float32ToPCM16(dst []int16, src []float32) (clipped int) {
	dst = dst[:len(src)]
	for i, x := range src {
		if x > 1 || x < -1 {
			clipped++
		}
		dst[i] = Float32ToInt16(x)
	}

	return clipped
}

// PCM16ToFloat32 converts src into dst, which must be at least as long.
func PCM16ToFloat32(dst []float32, src []int16) {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = Int16ToFloat32(v)
	}
}
