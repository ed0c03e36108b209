// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/raster"
)

// MaxSamples caps the length of a synthesised buffer.
const MaxSamples = 1 << 30

// Config holds the synthesis constants.
type Config struct {
	SampleRate      int
	Band            audio.Band
	SquareImageTime float64 // seconds of audio for a square raster
	Weight          WeightPolicy
	// Workers bounds the number of columns synthesised at once;
	// zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig mirrors the press defaults: 44.1kHz, 100Hz-10kHz, 15s.
func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		Band:            audio.Band{Min: 100, Max: 10000},
		SquareImageTime: 15,
		Weight:          WeightInk,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate %d: %w", c.SampleRate, ErrInvalidConfig)
	case c.Band.Min < 0 || c.Band.Min >= c.Band.Max:
		return fmt.Errorf("band %v-%v Hz: %w", c.Band.Min, c.Band.Max, ErrInvalidConfig)
	case c.SquareImageTime <= 0 || math.IsInf(c.SquareImageTime, 0) || math.IsNaN(c.SquareImageTime):
		return fmt.Errorf("square image time %v: %w", c.SquareImageTime, ErrInvalidConfig)
	case c.SquareImageTime*float64(c.SampleRate) > MaxSamples:
		return fmt.Errorf("square image time %v at %d Hz exceeds %d samples: %w", c.SquareImageTime, c.SampleRate, MaxSamples, ErrInvalidConfig)
	case c.Weight != WeightInk && c.Weight != WeightBrightness:
		return fmt.Errorf("%v: %w", c.Weight, ErrUnknownWeight)
	}
	return nil
}

// FrameCount is the exact, possibly fractional, number of frames a
// w x h raster presses to.
func (c Config) FrameCount(w, h int) float64 {
	return (float64(w) / float64(h)) * float64(c.SampleRate) * c.SquareImageTime
}

// Length is the sample count of the buffer a w x h raster presses to.
// It is only meaningful when FrameCount is within MaxSamples.
func (c Config) Length(w, h int) int {
	return int(math.Ceil(c.FrameCount(w, h)))
}

// Synthesizer renders rasters into audio buffers. It holds no mutable
// state and is safe for concurrent use.
type Synthesizer struct {
	cfg Config
}

func New(cfg Config) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Synthesizer{cfg: cfg}, nil
}

func (s *Synthesizer) Config() Config { return s.cfg }

// Synthesize presses img into a mono buffer at the configured rate.
func (s *Synthesizer) Synthesize(ctx context.Context, img image.Image) (*audio.Buffer, error) {
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	if frames := s.cfg.FrameCount(w, h); !(frames <= MaxSamples) {
		return nil, fmt.Errorf("%dx%d raster needs %v samples, limit %d: %w", w, h, frames, MaxSamples, raster.ErrInvalidInput)
	}
	length := s.cfg.Length(w, h)

	out := &audio.Buffer{SampleRate: s.cfg.SampleRate, Samples: make([]float32, length)}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, w)

	g, ctx := errgroup.WithContext(ctx)
	for part := range workers {
		first, last := part*w/workers, (part+1)*w/workers
		g.Go(func() error {
			osc := newBank(s.cfg, h)
			for x := first; x < last; x++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				start, end := ColumnSpan(x, w, length)
				osc.load(src, x)
				osc.render(start, out.Samples[start:end])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("synthesizing: %w", err)
	}

	return out, nil
}

// ColumnSpan returns the half-open range of global sample indices owned
// by column x of w when the whole raster spans length samples. Spans
// tile [0, length) without gaps or overlap.
func ColumnSpan(x, w, length int) (start, end int) {
	return x * length / w, (x + 1) * length / w
}

// bank is one worker's oscillator state for a single column.
type bank struct {
	cfg    Config
	omega  []float64 // radians per sample, per row
	weight []float64
	luma   []float64
	acc    []float64
}

func newBank(cfg Config, rows int) *bank {
	b := &bank{
		cfg:    cfg,
		omega:  make([]float64, rows),
		weight: make([]float64, rows),
	}
	for k := range rows {
		b.omega[k] = 2 * math.Pi * cfg.Band.Frequency(k, rows) / float64(cfg.SampleRate)
	}
	return b
}

func (b *bank) load(img *image.RGBA, x int) {
	b.luma = raster.Luminance(img, x, b.luma)
	for k, v := range b.luma {
		b.weight[k] = b.cfg.Weight.Weight(v)
	}
}

// render writes samples start..start+len(dst) of the loaded column.
func (b *bank) render(start int, dst []float32) {
	if cap(b.acc) < len(dst) {
		b.acc = make([]float64, len(dst))
	}
	acc := b.acc[:len(dst)]
	clear(acc)

	Column(b.weight, b.omega, start, acc)

	for i, v := range acc {
		dst[i] = float32(v)
	}
}

// Column adds Σ weight[k]·sin(omega[k]·i + Phase(k)) into acc[i-start]
// for every i in [start, start+len(acc)). omega is in radians per
// sample. Each oscillator is evaluated exactly at start and then
// advanced by rotation, which keeps the error far below float32
// resolution over a column.
func Column(weight, omega []float64, start int, acc []float64) {
	for k, w := range weight {
		if w == 0 {
			continue
		}

		theta := omega[k]*float64(start) + Phase(k)
		s, c := math.Sincos(theta)
		rs, rc := math.Sincos(omega[k])

		for i := range acc {
			acc[i] += w * s
			s, c = s*rc+c*rs, c*rc-s*rs
		}
	}
}
