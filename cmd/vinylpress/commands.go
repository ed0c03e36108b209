// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"

	"github.com/vinylpress/vinylpress"
	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/geometry"
	"github.com/vinylpress/vinylpress/playback"
	"github.com/vinylpress/vinylpress/spectral"
	"github.com/vinylpress/vinylpress/synth"
	"github.com/vinylpress/vinylpress/warp"
)

var errNoHomography = errors.New("quad has no invertible homography")

func sonifyCommand() *command {
	return &command{
		usage: "in.png out.wav",
		args:  2,
		run: func(ctx context.Context, e *env, args []string) error {
			img, err := readImage(args[0])
			if err != nil {
				return err
			}

			s, err := synth.New(e.opts.cfg.SynthConfig())
			if err != nil {
				return err
			}
			buf, err := s.Synthesize(ctx, img)
			if err != nil {
				return err
			}

			e.logger.Info("sonified", "in", args[0], "duration", buf.Duration(), "peak", buf.Peak())
			return writeWAV(args[1], buf, e.opts.normalize)
		},
	}
}

func analyzeCommand() *command {
	var cover bool

	return &command{
		usage: "[-cover] in.{wav,aiff,mp3,ogg} out.png",
		args:  2,
		setup: func(fs *flag.FlagSet) {
			fs.BoolVar(&cover, "cover", false, "paint square cover art instead of a spectrogram")
		},
		run: func(ctx context.Context, e *env, args []string) error {
			buf, err := readAudio(newRegistry(), args[0], e.opts.cfg)
			if err != nil {
				return err
			}

			a, err := spectral.New(e.opts.cfg.SpectralConfig())
			if err != nil {
				return err
			}

			var job *spectral.Job
			if cover {
				job = a.CoverArt(ctx, buf)
			} else {
				job = a.Analyze(ctx, buf, 0, 0)
			}
			img, err := job.Wait()
			if err != nil {
				return err
			}

			e.logger.Info("analyzed", "in", args[0], "duration", buf.Duration(), "size", img.Bounds().Size())
			return writePNG(args[1], img)
		},
	}
}

func unspinCommand() *command {
	return &command{
		usage: "in.png out.png",
		args:  2,
		run: func(_ context.Context, e *env, args []string) error {
			img, err := readImage(args[0])
			if err != nil {
				return err
			}
			out, err := geometry.Unspin(img, e.opts.cfg.CenterRatio)
			if err != nil {
				return err
			}
			return writePNG(args[1], out)
		},
	}
}

func spinCommand() *command {
	return &command{
		usage: "in.png out.png",
		args:  2,
		run: func(_ context.Context, _ *env, args []string) error {
			img, err := readImage(args[0])
			if err != nil {
				return err
			}
			out, err := geometry.Spin(img)
			if err != nil {
				return err
			}
			return writePNG(args[1], out)
		},
	}
}

func pressCommand() *command {
	return &command{
		usage: "in.png outdir",
		args:  2,
		run: func(ctx context.Context, e *env, args []string) error {
			img, err := readImage(args[0])
			if err != nil {
				return err
			}

			p, err := vinylpress.Press(ctx, img, e.opts.cfg)
			if err != nil {
				return err
			}

			for _, out := range []struct {
				name string
				img  image.Image
			}{
				{"unspun.png", p.Unspun},
				{"spectrogram.png", p.Spectrogram},
				{"art.png", p.Art},
			} {
				path, err := outputPath(args[1], out.name)
				if err != nil {
					return err
				}
				if err := writePNG(path, out.img); err != nil {
					return err
				}
				fmt.Fprintln(e.stdout, path)
			}

			path, err := outputPath(args[1], "audio.wav")
			if err != nil {
				return err
			}
			if err := writeWAV(path, p.Audio, e.opts.normalize); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, path)

			e.logger.Info("pressed", "in", args[0], "out", args[1], "duration", p.Audio.Duration())
			return nil
		},
	}
}

func warpCommand() *command {
	var quad, overlay string

	return &command{
		usage: "-quad x,y,x,y,x,y,x,y [-overlay mask.png] in.png out.png",
		args:  2,
		setup: func(fs *flag.FlagSet) {
			fs.StringVar(&quad, "quad", "", "screen corners clockwise from top left, in canvas pixels")
			fs.StringVar(&overlay, "overlay", "", "image whose drawn pixels mark the region to keep")
		},
		run: func(_ context.Context, e *env, args []string) error {
			q, err := parseQuad(quad)
			if err != nil {
				return err
			}

			capture, err := readImage(args[0])
			if err != nil {
				return err
			}
			var mask image.Image
			if overlay != "" {
				if mask, err = readImage(overlay); err != nil {
					return err
				}
			}

			c, err := warp.NewCompositor(e.opts.cfg.WarpConfig(), e.logger)
			if err != nil {
				return err
			}
			out, ok := c.Composite(capture, mask, q)
			if !ok {
				return fmt.Errorf("%s: %w", quad, errNoHomography)
			}
			return writePNG(args[1], out)
		},
	}
}

func playCommand() *command {
	return &command{
		usage: "in.{png,wav,aiff,mp3,ogg}",
		args:  1,
		run: func(ctx context.Context, e *env, args []string) error {
			buf, err := loadForPlayback(ctx, args[0], e.opts.cfg)
			if err != nil {
				return err
			}

			p, err := playback.New(buf.SampleRate)
			if err != nil {
				return err
			}
			if err := p.Play(buf); err != nil {
				return err
			}

			e.logger.Info("playing, interrupt to stop", "in", args[0], "duration", buf.Duration())
			<-ctx.Done()
			return p.Stop()
		},
	}
}

// loadForPlayback decodes audio files and presses images.
func loadForPlayback(ctx context.Context, path string, cfg vinylpress.Config) (*audio.Buffer, error) {
	r := newRegistry()
	if isAudio(r, path) {
		return readAudio(r, path, cfg)
	}

	img, err := readImage(path)
	if err != nil {
		return nil, err
	}
	p, err := vinylpress.Press(ctx, img, cfg)
	if err != nil {
		return nil, err
	}
	return p.Audio, nil
}
