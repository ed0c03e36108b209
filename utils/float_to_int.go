// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Clamp32 limits x to [-1, 1].
func Clamp32(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}

// PeakGain returns the factor that brings the loudest sample of samples to
// unit amplitude. Silent or already in-range input returns 1.
func PeakGain(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}

	if peak <= 1 {
		return 1
	}

	return 1 / peak
}

// PCMScale is the full-scale magnitude of signed integer PCM at bitDepth
// bits, the divisor that maps samples into [-1, 1). Unknown depths are
// treated as 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float32(uint64(1) << (bitDepth - 1))
	default:
		return 32768
	}
}
