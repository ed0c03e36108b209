// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"context"
	"fmt"
)

// RenderQuantum is the largest block of frames the clock hands to its
// sink in one step.
const RenderQuantum = 128

// Sink receives rendered frames in order.
type Sink interface {
	Process(frames []float32)
}

type checkpoint struct {
	frame int
	fn    func()
}

// Clock is a deterministic, single-threaded render clock. It plays a
// block of samples into a Sink and suspends at registered checkpoints.
// At each checkpoint the clock has rendered exactly frame frames; the
// callback runs synchronously and rendering resumes only after it
// returns, so callbacks never overlap and always run in frame order.
type Clock struct {
	samples     []float32
	sink        Sink
	checkpoints []checkpoint
	pos         int
	started     bool
}

func NewClock(samples []float32, sink Sink) *Clock {
	return &Clock{samples: samples, sink: sink}
}

// Length is the number of frames the clock renders in total.
func (c *Clock) Length() int { return len(c.samples) }

// Position is the number of frames rendered so far.
func (c *Clock) Position() int { return c.pos }

// Schedule registers fn to run when the clock reaches frame. Frames must
// be non-negative and strictly increasing across calls. A frame at or
// beyond Length fires once everything has been rendered.
func (c *Clock) Schedule(frame int, fn func()) error {
	if c.started {
		return ErrClockRunning
	}
	if frame < 0 {
		return fmt.Errorf("frame %d: %w", frame, ErrCheckpointOrder)
	}
	if n := len(c.checkpoints); n > 0 && frame <= c.checkpoints[n-1].frame {
		return fmt.Errorf("frame %d after %d: %w", frame, c.checkpoints[n-1].frame, ErrCheckpointOrder)
	}

	c.checkpoints = append(c.checkpoints, checkpoint{frame: frame, fn: fn})
	return nil
}

// Run renders every frame, firing checkpoints on the way, and returns
// when rendering is complete. A clock runs once.
func (c *Clock) Run(ctx context.Context) error {
	if c.started {
		return ErrClockRunning
	}
	c.started = true

	for _, cp := range c.checkpoints {
		if err := c.renderTo(ctx, min(cp.frame, len(c.samples))); err != nil {
			return err
		}
		cp.fn()
	}

	return c.renderTo(ctx, len(c.samples))
}

func (c *Clock) renderTo(ctx context.Context, frame int) error {
	for c.pos < frame {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render stopped at frame %d: %w", c.pos, err)
		}

		n := min(RenderQuantum, frame-c.pos)
		c.sink.Process(c.samples[c.pos : c.pos+n])
		c.pos += n
	}
	return nil
}
