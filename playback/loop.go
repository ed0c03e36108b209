// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"math"

	"github.com/vinylpress/vinylpress/utils"
)

// bytesPerSample of the float32 little-endian stream handed to the device.
const bytesPerSample = 4

// loop streams samples as mono float32LE forever, wrapping to the start
// after the last sample. Values are clamped to [-1, 1]
// and NaN plays as silence.
type loop struct {
	samples []float32
	pos     int
	// partial holds the bytes of a sample split across Read calls.
	partial [bytesPerSample]byte
	pending int
}

func newLoop(samples []float32) *loop {
	return &loop{samples: samples}
}

func (l *loop) Read(p []byte) (int, error) {
	n := 0

	for n < len(p) && l.pending > 0 {
		p[n] = l.partial[bytesPerSample-l.pending]
		l.pending--
		n++
	}

	for len(p)-n >= bytesPerSample {
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(l.next()))
		n += bytesPerSample
	}

	if rest := len(p) - n; rest > 0 {
		binary.LittleEndian.PutUint32(l.partial[:], math.Float32bits(l.next()))
		copy(p[n:], l.partial[:rest])
		l.pending = bytesPerSample - rest
		n += rest
	}

	return n, nil
}

func (l *loop) next() float32 {
	v := utils.Clamp32(l.samples[l.pos])
	if v != v {
		v = 0
	}
	l.pos++
	if l.pos == len(l.samples) {
		l.pos = 0
	}
	return v
}
