// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/vinylpress/vinylpress"
	"github.com/vinylpress/vinylpress/synth"
	"github.com/vinylpress/vinylpress/warp"
)

// options are the flags shared by every subcommand.
type options struct {
	cfg       vinylpress.Config
	logLevel  string
	normalize bool
}

func newFlagSet(name string, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	opts.cfg = vinylpress.DefaultConfig()
	c := &opts.cfg

	fs.StringVar(&opts.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	fs.BoolVar(&opts.normalize, "normalize", false, "peak-normalise WAV output instead of clipping")

	fs.IntVar(&c.SampleRate, "rate", c.SampleRate, "sample rate in Hz")
	fs.Float64Var(&c.MinFreq, "min-freq", c.MinFreq, "frequency of the top raster row in Hz")
	fs.Float64Var(&c.MaxFreq, "max-freq", c.MaxFreq, "frequency past the bottom raster row in Hz")
	fs.Float64Var(&c.SquareImageTime, "square-time", c.SquareImageTime, "seconds of audio for a square raster")
	fs.IntVar(&c.FFTSize, "fft", c.FFTSize, "analyser FFT size (power of two)")
	fs.Float64Var(&c.MinDecibels, "min-db", c.MinDecibels, "level painted black")
	fs.Float64Var(&c.MaxDecibels, "max-db", c.MaxDecibels, "level painted white")
	fs.Float64Var(&c.CenterRatio, "center-ratio", c.CenterRatio, "label hole radius over disk radius")
	fs.IntVar(&c.SpectrogramWidth, "spectrogram-width", c.SpectrogramWidth, "spectrogram columns")
	fs.IntVar(&c.SpectrogramHeight, "spectrogram-height", c.SpectrogramHeight, "spectrogram rows")
	fs.IntVar(&c.CanvasWidth, "canvas-width", c.CanvasWidth, "warp canvas width")
	fs.IntVar(&c.CanvasHeight, "canvas-height", c.CanvasHeight, "warp canvas height")
	fs.IntVar(&c.Workers, "workers", c.Workers, "synthesis workers, 0 for GOMAXPROCS")
	fs.Func("weight", "brightness to loudness policy (ink|brightness)", func(s string) error {
		w, err := synth.ParseWeightPolicy(s)
		if err != nil {
			return err
		}
		c.Weight = w
		return nil
	})

	return fs
}

// parseQuad reads eight comma separated numbers, the corners clockwise
// from top left.
func parseQuad(s string) (warp.Quad, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 8 {
		return warp.Quad{}, fmt.Errorf("quad %q: want 8 numbers, got %d", s, len(fields))
	}

	var v [8]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return warp.Quad{}, fmt.Errorf("quad %q: %w", s, err)
		}
		v[i] = n
	}

	return warp.Quad{
		UpLeft:    warp.Point{X: v[0], Y: v[1]},
		UpRight:   warp.Point{X: v[2], Y: v[3]},
		DownRight: warp.Point{X: v[4], Y: v[5]},
		DownLeft:  warp.Point{X: v[6], Y: v[7]},
	}, nil
}
