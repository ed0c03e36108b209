// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"math/rand/v2"
)

// PhaseTableSize is the number of distinct oscillator phases. Rows past
// it reuse the table cyclically.
const PhaseTableSize = 1024

// fixed seed: the same raster always presses the same audio
const phaseSeed = 0x5eed_1e55

// phaseOffsets is filled once at package initialisation and only read
// afterwards, so concurrent synthesis needs no locking.
var phaseOffsets = newPhaseTable()

func newPhaseTable() [PhaseTableSize]float64 {
	rng := rand.New(rand.NewPCG(phaseSeed, phaseSeed>>1))

	var table [PhaseTableSize]float64
	for i := range table {
		table[i] = 2 * math.Pi * rng.Float64()
	}
	return table
}

// Phase returns the starting phase in radians of oscillator k.
func Phase(k int) float64 {
	return phaseOffsets[k%PhaseTableSize]
}
