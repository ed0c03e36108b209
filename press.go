// SPDX-License-Identifier: EPL-2.0

package vinylpress

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/geometry"
	"github.com/vinylpress/vinylpress/spectral"
	"github.com/vinylpress/vinylpress/synth"
)

// Pressing is everything one press of a disk image produces.
type Pressing struct {
	// Unspun is the groove annulus unwrapped into a rectangle.
	Unspun *image.RGBA
	// Audio is Unspun played as an additive spectrum.
	Audio *audio.Buffer
	// Spectrogram is Audio analysed back into a rectangle.
	Spectrogram *image.RGBA
	// Art is Spectrogram wrapped into a disk.
	Art *image.RGBA
}

// Press runs the full record cycle on a photograph of a disk: unspin,
// synthesize, analyze, spin.
func Press(ctx context.Context, img image.Image, cfg Config) (*Pressing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := synth.New(cfg.SynthConfig())
	if err != nil {
		return nil, err
	}
	a, err := spectral.New(cfg.SpectralConfig())
	if err != nil {
		return nil, err
	}

	var p Pressing

	started := time.Now()
	if p.Unspun, err = geometry.Unspin(img, cfg.CenterRatio); err != nil {
		return nil, fmt.Errorf("unspin: %w", err)
	}
	started = stage("unspin", started)

	if p.Audio, err = s.Synthesize(ctx, p.Unspun); err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	started = stage("synthesize", started)

	job := a.Analyze(ctx, p.Audio, cfg.SpectrogramWidth, cfg.SpectrogramHeight)
	if p.Spectrogram, err = job.Wait(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	started = stage("analyze", started)

	if p.Art, err = geometry.Spin(p.Spectrogram); err != nil {
		return nil, fmt.Errorf("spin: %w", err)
	}
	stage("spin", started)

	return &p, nil
}

func stage(name string, since time.Time) time.Time {
	now := time.Now()
	slog.Debug("press stage done", "stage", name, "elapsed", now.Sub(since))
	return now
}
