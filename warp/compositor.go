// SPDX-License-Identifier: EPL-2.0

package warp

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"github.com/vinylpress/vinylpress/raster"
)

// Config sizes the canonical rectangle the anchors are rectified onto.
type Config struct {
	Width  int
	Height int
	// Markers stamps a 4x4 white square at each anchor.
	Markers bool
}

func DefaultConfig() Config {
	return Config{Width: 640, Height: 480, Markers: true}
}

// CaptureSource supplies camera frames.
type CaptureSource interface {
	Ready() bool
	// Snapshot returns the latest frame, or nil when none is available.
	Snapshot() image.Image
}

// Scene supplies the tracked anchors, projected to canvas pixels, and
// the rendered overlay whose opaque pixels mark the region to keep.
type Scene interface {
	Anchors() Quad
	Overlay() image.Image
}

// Compositor rectifies the tracked region of successive camera frames
// onto a fixed canvas. It owns its scratch rasters and is not safe for
// concurrent use. The raster it returns is overwritten by the next
// frame.
type Compositor struct {
	cfg    Config
	logger *slog.Logger
	rect   Quad

	canvas *image.RGBA // capture with the mask drawn over it
	mask   *image.RGBA
	gray   []uint8
	warped []uint8
	out    *image.RGBA
}

// NewCompositor allocates the scratch rasters for cfg. A nil logger
// logs to slog.Default().
func NewCompositor(cfg Config, logger *slog.Logger) (*Compositor, error) {
	if err := raster.ValidateSize(cfg.Width, cfg.Height); err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	n := cfg.Width * cfg.Height

	return &Compositor{
		cfg:    cfg,
		logger: logger,
		rect:   Rect(float64(cfg.Width), float64(cfg.Height)),
		canvas: image.NewRGBA(bounds),
		mask:   image.NewRGBA(bounds),
		gray:   make([]uint8, n),
		warped: make([]uint8, n),
		out:    image.NewRGBA(bounds),
	}, nil
}

// Step composites one frame from its collaborators. It reports false,
// with the previous composite, when the camera is not ready or the
// frame was skipped.
func (c *Compositor) Step(capture CaptureSource, scene Scene) (*image.RGBA, bool) {
	if !capture.Ready() {
		return c.out, false
	}

	frame := capture.Snapshot()
	if frame == nil || frame.Bounds().Empty() {
		return c.out, false
	}

	return c.Composite(frame, scene.Overlay(), scene.Anchors())
}

// Composite masks capture with overlay, converts it to grey and warps
// the quad onto the canvas. Overlay pixels that are transparent become
// opaque in the mask and hide the capture; drawn overlay pixels let it
// through. A nil overlay keeps the whole capture.
//
// When quad has no invertible homography the frame is skipped: the
// previous composite is returned with false.
func (c *Compositor) Composite(capture, overlay image.Image, quad Quad) (*image.RGBA, bool) {
	if err := raster.Validate(capture); err != nil {
		c.logger.Debug("skipping frame", "err", err)
		return c.out, false
	}

	// the warp reads the canvas through the inverse of screen -> canvas
	h, err := Solve(quad, c.rect)
	if err == nil {
		h, err = h.Inverse()
	}
	if err != nil {
		c.logger.Debug("skipping frame", "anchors", quad, "err", err)
		return c.out, false
	}

	raster.ScaleInto(c.canvas, capture)
	if overlay != nil && !overlay.Bounds().Empty() {
		raster.ScaleInto(c.mask, overlay)
		invertAlpha(c.mask)
		draw.Draw(c.canvas, c.canvas.Bounds(), c.mask, image.Point{}, draw.Over)
	}

	c.gray = raster.Gray(c.canvas, c.gray)
	Perspective(c.gray, c.cfg.Width, c.cfg.Height, c.warped, c.cfg.Width, c.cfg.Height, h)

	pix := c.out.Pix
	for i, p := range c.warped {
		pix[4*i], pix[4*i+1], pix[4*i+2], pix[4*i+3] = p, p, p, 0xff
	}

	if c.cfg.Markers {
		for _, p := range quad.points() {
			c.marker(p)
		}
	}

	return c.out, true
}

// invertAlpha swaps transparent and non-transparent pixels. Pixels that
// turn transparent are cleared so the raster stays premultiplied.
func invertAlpha(img *image.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4 : i+4]
		if p[3] == 0 {
			p[3] = 0xff
		} else {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
}

var markerColor = image.NewUniform(color.White)

func (c *Compositor) marker(p Point) {
	if !(math.Abs(p.X) < math.MaxInt32 && math.Abs(p.Y) < math.MaxInt32) {
		return
	}

	x, y := int(math.Round(p.X)), int(math.Round(p.Y))
	r := image.Rect(x, y, x+4, y+4).Intersect(c.out.Bounds())
	if !r.Empty() {
		draw.Draw(c.out, r, markerColor, image.Point{}, draw.Src)
	}
}
