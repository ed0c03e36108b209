// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic audio fixtures shared by tests.
package audiotest

import (
	"io"
	"math"

	"github.com/vinylpress/vinylpress/audio"
)

// MockSource generates audio from a waveform function. It implements
// audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}

	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// Tone returns a mono buffer holding a sine of the given frequency and
// amplitude.
func Tone(sampleRate, n int, frequency float64, amplitude float32) *audio.Buffer {
	buf := &audio.Buffer{SampleRate: sampleRate, Samples: make([]float32, n)}
	for i := range buf.Samples {
		t := float64(i) / float64(sampleRate)
		buf.Samples[i] = amplitude * float32(math.Sin(2*math.Pi*frequency*t))
	}
	return buf
}

// Silence returns a mono buffer of n zero samples.
func Silence(sampleRate, n int) *audio.Buffer {
	return &audio.Buffer{SampleRate: sampleRate, Samples: make([]float32, n)}
}

// StalledSource yields frames samples of value 0.25, then reports
// (0, nil) on every read without ever reaching EOF.
type StalledSource struct {
	sampleRate int
	channels   int
	left       int
}

func NewStalledSource(sampleRate, channels, frames int) *StalledSource {
	return &StalledSource{sampleRate: sampleRate, channels: channels, left: frames * channels}
}

func (s *StalledSource) SampleRate() int { return s.sampleRate }
func (s *StalledSource) Channels() int   { return s.channels }
func (s *StalledSource) BufSize() int    { return 64 }
func (s *StalledSource) Close() error    { return nil }

func (s *StalledSource) ReadSamples(dst []float32) (int, error) {
	n := min(len(dst)-len(dst)%s.channels, s.left)
	for i := range n {
		dst[i] = 0.25
	}
	s.left -= n
	return n, nil
}
