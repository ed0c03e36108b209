// SPDX-License-Identifier: EPL-2.0

package vinylpress

import (
	"fmt"
	"math"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/raster"
	"github.com/vinylpress/vinylpress/spectral"
	"github.com/vinylpress/vinylpress/synth"
	"github.com/vinylpress/vinylpress/warp"
)

// Config collects every constant of the press. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	SampleRate int

	// MinFreq and MaxFreq bound the band shared by the synthesizer and
	// the spectrogram rows.
	MinFreq float64
	MaxFreq float64

	// SquareImageTime is the length in seconds of a square raster.
	SquareImageTime float64

	FFTSize     int
	MinDecibels float64
	MaxDecibels float64

	// CenterRatio is the label hole radius as a fraction of the disk
	// radius.
	CenterRatio float64

	CanvasWidth  int
	CanvasHeight int

	SpectrogramWidth  int
	SpectrogramHeight int

	Weight synth.WeightPolicy

	// Workers bounds synthesis parallelism; zero means GOMAXPROCS.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:        44100,
		MinFreq:           100,
		MaxFreq:           10000,
		SquareImageTime:   15,
		FFTSize:           512,
		MinDecibels:       -100,
		MaxDecibels:       -30,
		CenterRatio:       0.37,
		CanvasWidth:       640,
		CanvasHeight:      480,
		SpectrogramWidth:  int(math.Floor(512 * math.Pi)),
		SpectrogramHeight: 512,
		Weight:            synth.WeightInk,
	}
}

// Validate reports the first field that cannot drive a press. Every
// returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	var err error

	switch {
	case c.SampleRate <= 0:
		err = fmt.Errorf("sample rate %d must be positive", c.SampleRate)
	case !(c.MinFreq >= 0 && c.MinFreq < c.MaxFreq):
		err = fmt.Errorf("band %v-%v Hz is empty", c.MinFreq, c.MaxFreq)
	case c.MaxFreq > float64(c.SampleRate)/2:
		err = fmt.Errorf("max frequency %v Hz is above Nyquist for %d Hz", c.MaxFreq, c.SampleRate)
	case !(c.CenterRatio > 0 && c.CenterRatio < 1):
		err = fmt.Errorf("center ratio %v is outside (0, 1)", c.CenterRatio)
	case c.Workers < 0:
		err = fmt.Errorf("%d workers", c.Workers)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.SynthConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.SpectralConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := raster.ValidateSize(c.CanvasWidth, c.CanvasHeight); err != nil {
		return fmt.Errorf("%w: canvas: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Band() audio.Band {
	return audio.Band{Min: c.MinFreq, Max: c.MaxFreq}
}

func (c Config) SynthConfig() synth.Config {
	return synth.Config{
		SampleRate:      c.SampleRate,
		Band:            c.Band(),
		SquareImageTime: c.SquareImageTime,
		Weight:          c.Weight,
		Workers:         c.Workers,
	}
}

func (c Config) SpectralConfig() spectral.Config {
	return spectral.Config{
		FFTSize:     c.FFTSize,
		MinDecibels: c.MinDecibels,
		MaxDecibels: c.MaxDecibels,
		Band:        c.Band(),
		Width:       c.SpectrogramWidth,
		Height:      c.SpectrogramHeight,
	}
}

func (c Config) WarpConfig() warp.Config {
	return warp.Config{
		Width:   c.CanvasWidth,
		Height:  c.CanvasHeight,
		Markers: true,
	}
}
