// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToPCM converts a normalized sample in [-1,1] to a signed integer of
// the given bit depth. Values outside the range are clamped.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use max-1 for positive full scale to avoid overflow
	return int(float64(x) * float64(fullScale(bitDepth)-1))
}

// PCMToFloat converts a signed integer sample of the given bit depth to a
// normalized float32.
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(v) / float32(fullScale(bitDepth))
}

// Float32ToInt16 is FloatToPCM for 16-bit output.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(x, 16))
}

func fullScale(bitDepth int) int64 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return int64(1) << (bitDepth - 1)
	default:
		return 1 << 15
	}
}
