// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Buffer is a mono block of float samples at a fixed rate. Samples are
// not normalised: additive synthesis can push them well past unit
// amplitude. Treat a Buffer as immutable once handed out.
type Buffer struct {
	SampleRate int
	Samples    []float32
}

// NewBuffer allocates a silent buffer of n frames.
func NewBuffer(sampleRate, n int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	if n < 0 {
		return nil, fmt.Errorf("negative length %d: %w", n, ErrEmptyBuffer)
	}

	return &Buffer{SampleRate: sampleRate, Samples: make([]float32, n)}, nil
}

func (b *Buffer) Len() int { return len(b.Samples) }

// Duration of the buffer at its sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Seconds is Duration as a float.
func (b *Buffer) Seconds() float64 {
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float32 {
	var peak float32
	for _, s := range b.Samples {
		peak = max(peak, float32(math.Abs(float64(s))))
	}
	return peak
}

// Validate reports whether b can be fed to an encoder or analyser.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Samples) == 0 {
		return ErrEmptyBuffer
	}
	if b.SampleRate <= 0 {
		return ErrInvalidRate
	}
	return nil
}

// NewReader returns a Source view over b starting at the first sample.
// Readers are independent; b is never modified.
func (b *Buffer) NewReader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return 1 }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll drains a mono Source into a Buffer.
func ReadAll(src Source) (*Buffer, error) {
	if src.Channels() != 1 {
		return nil, fmt.Errorf("%d channels: %w", src.Channels(), ErrNotMono)
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}

	out := &Buffer{SampleRate: src.SampleRate()}
	chunk := make([]float32, size)

	empty := 0
	for {
		n, err := src.ReadSamples(chunk)
		out.Samples = append(out.Samples, chunk[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n > 0 {
			empty = 0
		} else if empty++; empty >= maxEmptyReads {
			return nil, fmt.Errorf("reading samples: %d empty reads: %w", empty, io.ErrNoProgress)
		}
	}

	return out, nil
}
