// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"strings"
)

// WeightPolicy converts pixel brightness into oscillator amplitude.
type WeightPolicy int

const (
	// WeightInk inverts brightness and thresholds it at 0.5: dark pixels
	// sound at full amplitude, light ones are silent.
	WeightInk WeightPolicy = iota
	// WeightBrightness uses brightness directly: white is loudest.
	WeightBrightness
)

// Weight returns the amplitude for a brightness in [0, 1].
func (p WeightPolicy) Weight(brightness float64) float64 {
	if p == WeightBrightness {
		return brightness
	}

	if 1-brightness > 0.5 {
		return 1
	}
	return 0
}

func (p WeightPolicy) String() string {
	switch p {
	case WeightInk:
		return "ink"
	case WeightBrightness:
		return "brightness"
	default:
		return fmt.Sprintf("WeightPolicy(%d)", int(p))
	}
}

// ParseWeightPolicy is the inverse of String.
func ParseWeightPolicy(s string) (WeightPolicy, error) {
	switch strings.ToLower(s) {
	case "ink":
		return WeightInk, nil
	case "brightness":
		return WeightBrightness, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownWeight)
}
