// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/vinylpress/vinylpress/utils"
)

// Resampler converts src to a new sample rate with Catmull-Rom cubic
// interpolation. Channel count and interleaving are preserved. When
// downsampling, a one-pole low-pass runs ahead of the interpolator.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1, t+2. Past the end of src
	// the last frame repeats.
	window [4][]float32
	primed bool

	// base is the source index of window[1]; read counts frames taken
	// from src. Output stops once base reaches read after EOF.
	base int
	read int

	// fractional position between window[1] and window[2]
	pos float64

	frame []float32
	eof   bool

	lowpass bool
	alpha   float32
	state   []float32
}

// maxEmptyReads bounds consecutive (0, nil) reads from a source before
// it is reported as stuck.
const maxEmptyReads = 100

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowpass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one interleaved frame from src into r.frame. It
// reports false, with no error, once src is exhausted.
func (r *Resampler) readFrame() (bool, error) {
	for range maxEmptyReads {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.frame)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, io.ErrNoProgress
}

func (r *Resampler) filter(frame []float32) {
	if !r.lowpass {
		return
	}
	for c := range frame {
		frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.state[c]
		r.state[c] = frame[c]
	}
}

// prime fills the window before the first output frame. The first
// source frame lands in window[1] and is mirrored into window[0]. A
// source shorter than three frames repeats its last frame.
func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < len(r.window); i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if !ok {
			if i == 1 {
				return io.EOF
			}
			copy(r.window[i], r.window[i-1])
			continue
		}

		if i == 1 && r.lowpass {
			copy(r.state, r.frame)
		}
		r.filter(r.frame)
		copy(r.window[i], r.frame)
		r.read++
	}

	copy(r.window[0], r.window[1])

	return nil
}

// advance shifts the window left by one frame. After EOF window[3]
// keeps the last frame.
func (r *Resampler) advance() error {
	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.base++

	ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if ok {
		r.filter(r.frame)
		copy(r.window[3], r.frame)
		r.read++
	}

	return nil
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.base >= r.read {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CatmullRom(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
