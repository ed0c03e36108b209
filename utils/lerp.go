// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp maps value from the range [low1, high1] onto [low2, high2].
// Values outside the source range are extrapolated, not clamped.
func Lerp(value, low1, high1, low2, high2 float64) float64 {
	normalized := (value - low1) / (high1 - low1)
	return low2 + normalized*(high2-low2)
}
