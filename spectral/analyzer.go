// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/raster"
)

// Config holds the analysis constants.
type Config struct {
	FFTSize     int
	MinDecibels float64
	MaxDecibels float64
	Band        audio.Band
	// Width and Height are the spectrogram size used when Analyze is
	// asked for a zero dimension.
	Width  int
	Height int
}

// DefaultConfig mirrors the press defaults: 512-point FFT, -100..-30 dB,
// 100Hz-10kHz, a ⌊512π⌋ x 512 canvas.
func DefaultConfig() Config {
	return Config{
		FFTSize:     512,
		MinDecibels: -100,
		MaxDecibels: -30,
		Band:        audio.Band{Min: 100, Max: 10000},
		Width:       int(math.Floor(512 * math.Pi)),
		Height:      512,
	}
}

func (c Config) Validate() error {
	switch {
	case c.FFTSize < 32 || c.FFTSize > 32768 || c.FFTSize&(c.FFTSize-1) != 0:
		return fmt.Errorf("fft size %d is not a power of two in [32, 32768]: %w", c.FFTSize, ErrInvalidConfig)
	case c.MinDecibels >= c.MaxDecibels:
		return fmt.Errorf("decibel range [%v, %v]: %w", c.MinDecibels, c.MaxDecibels, ErrInvalidConfig)
	case c.Band.Min < 0 || c.Band.Min >= c.Band.Max:
		return fmt.Errorf("band %v-%v Hz: %w", c.Band.Min, c.Band.Max, ErrInvalidConfig)
	}
	return raster.ValidateSize(c.Width, c.Height)
}

// Analyzer paints spectrograms of audio buffers.
type Analyzer struct {
	cfg Config
}

func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

func (a *Analyzer) Config() Config { return a.cfg }

// Analyze renders buf through a Spectrum and paints one column of a
// width x height grey raster per snapshot. Snapshots are taken at width
// evenly spaced frames; row y shows the bin nearest to the frequency
// row y sounds at in the synthesizer, low frequencies on top.
func (a *Analyzer) Analyze(ctx context.Context, buf *audio.Buffer, width, height int) *Job {
	if width == 0 {
		width = a.cfg.Width
	}
	if height == 0 {
		height = a.cfg.Height
	}

	return start(ctx, func(ctx context.Context) (*image.RGBA, error) {
		img, err := a.canvas(buf, width, height, width)
		if err != nil {
			return nil, err
		}

		spectrum := NewSpectrum(a.cfg.FFTSize, buf.SampleRate, a.cfg.MinDecibels, a.cfg.MaxDecibels)

		rowBin := make([]int, height)
		for y := range rowBin {
			rowBin[y] = spectrum.BinForFrequency(a.cfg.Band.Frequency(y, height))
		}

		err = snapshots(ctx, buf, spectrum, width, func(x int, data []byte) {
			for y, bin := range rowBin {
				raster.SetGray(img, x, y, data[bin])
			}
		})
		if err != nil {
			return nil, err
		}
		return img, nil
	})
}

// CoverArt paints a square raster whose side is the FFT bin count: one
// row per snapshot, one column per bin, no frequency remapping.
func (a *Analyzer) CoverArt(ctx context.Context, buf *audio.Buffer) *Job {
	side := a.cfg.FFTSize / 2

	return start(ctx, func(ctx context.Context) (*image.RGBA, error) {
		img, err := a.canvas(buf, side, side, side)
		if err != nil {
			return nil, err
		}

		spectrum := NewSpectrum(a.cfg.FFTSize, buf.SampleRate, a.cfg.MinDecibels, a.cfg.MaxDecibels)

		err = snapshots(ctx, buf, spectrum, side, func(y int, data []byte) {
			for x, v := range data {
				raster.SetGray(img, x, y, v)
			}
		})
		if err != nil {
			return nil, err
		}
		return img, nil
	})
}

func (a *Analyzer) canvas(buf *audio.Buffer, w, h, checkpoints int) (*image.RGBA, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, err)
	}
	if buf.Len() < checkpoints {
		return nil, fmt.Errorf("%d samples for %d snapshots: %w", buf.Len(), checkpoints, raster.ErrInvalidInput)
	}
	return raster.New(w, h)
}

// snapshots plays buf through spectrum and calls paint n times, at frames
// ⌊i·len/n⌋ for i in [0, n), with the byte spectrum at that moment.
func snapshots(ctx context.Context, buf *audio.Buffer, spectrum *Spectrum, n int, paint func(i int, data []byte)) error {
	clock := NewClock(buf.Samples, spectrum)
	data := make([]byte, spectrum.FrequencyBinCount())

	for i := range n {
		frame := i * buf.Len() / n
		err := clock.Schedule(frame, func() {
			spectrum.ByteFrequencyData(data)
			paint(i, data)
		})
		if err != nil {
			return err
		}
	}

	return clock.Run(ctx)
}
