// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum is a frequency analyser node: it remembers the most recent
// FFT-size frames it was fed and reports their magnitude spectrum on
// demand. No smoothing is applied between snapshots.
type Spectrum struct {
	size       int
	sampleRate int
	minDB      float64
	maxDB      float64

	history []float32 // ring of the last size frames
	head    int       // next write index in history

	fft    *fourier.FFT
	window []float64
	frame  []float64
	coeffs []complex128
}

// NewSpectrum builds an analyser with a Blackman window of size frames.
// size must be a power of two.
func NewSpectrum(size, sampleRate int, minDB, maxDB float64) *Spectrum {
	s := &Spectrum{
		size:       size,
		sampleRate: sampleRate,
		minDB:      minDB,
		maxDB:      maxDB,
		history:    make([]float32, size),
		fft:        fourier.NewFFT(size),
		window:     make([]float64, size),
		frame:      make([]float64, size),
		coeffs:     make([]complex128, size/2+1),
	}

	const alpha = 0.16
	a0, a1, a2 := (1-alpha)/2, 0.5, alpha/2
	for n := range s.window {
		x := 2 * math.Pi * float64(n) / float64(size)
		s.window[n] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}

	return s
}

// FrequencyBinCount is half the FFT size.
func (s *Spectrum) FrequencyBinCount() int { return s.size / 2 }

// BinWidth is the spacing of FFT bins in Hz.
func (s *Spectrum) BinWidth() float64 {
	return float64(s.sampleRate) / float64(s.size)
}

// BinForFrequency returns the bin nearest to freq, clamped to the valid
// bin range.
func (s *Spectrum) BinForFrequency(freq float64) int {
	bin := int(math.Round(freq / s.BinWidth()))
	return max(0, min(bin, s.FrequencyBinCount()-1))
}

// Process implements Sink.
func (s *Spectrum) Process(frames []float32) {
	if len(frames) >= s.size {
		copy(s.history, frames[len(frames)-s.size:])
		s.head = 0
		return
	}

	for _, v := range frames {
		s.history[s.head] = v
		s.head++
		if s.head == s.size {
			s.head = 0
		}
	}
}

// Reset forgets every frame processed so far.
func (s *Spectrum) Reset() {
	clear(s.history)
	s.head = 0
}

// FloatFrequencyData writes the spectrum in decibels into dst, one value
// per bin. Silent bins are -Inf.
func (s *Spectrum) FloatFrequencyData(dst []float64) {
	s.transform()

	n := min(len(dst), s.FrequencyBinCount())
	scale := 1 / float64(s.size)
	for k := range n {
		dst[k] = 20 * math.Log10(cmplx.Abs(s.coeffs[k])*scale)
	}
}

// ByteFrequencyData writes the spectrum into dst scaled so that the
// decibel range [minDB, maxDB] covers 0-255; values outside clip.
func (s *Spectrum) ByteFrequencyData(dst []byte) {
	s.transform()

	n := min(len(dst), s.FrequencyBinCount())
	scale := 1 / float64(s.size)
	span := 255 / (s.maxDB - s.minDB)
	for k := range n {
		db := 20 * math.Log10(cmplx.Abs(s.coeffs[k])*scale)
		v := math.Floor(span * (db - s.minDB))
		switch {
		case math.IsNaN(v) || v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = byte(v)
		}
	}
}

// transform windows the history in time order and runs the FFT.
func (s *Spectrum) transform() {
	for n := range s.frame {
		s.frame[n] = float64(s.history[(s.head+n)%s.size]) * s.window[n]
	}
	s.coeffs = s.fft.Coefficients(s.coeffs, s.frame)
}
