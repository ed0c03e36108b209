// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/vinylpress/vinylpress/utils"

// Band is the audible range image rows are spread over. Row 0 of an
// n-row raster sits on Min; row n would sit on Max.
type Band struct {
	Min float64 // Hz
	Max float64 // Hz
}

// Frequency returns the oscillator frequency of row i out of n.
func (b Band) Frequency(i, n int) float64 {
	return utils.Lerp(float64(i), 0, float64(n), b.Min, b.Max)
}

// Row is the inverse of Frequency: the fractional row of freq in an
// n-row raster.
func (b Band) Row(freq float64, n int) float64 {
	return utils.Lerp(freq, b.Min, b.Max, 0, float64(n))
}
