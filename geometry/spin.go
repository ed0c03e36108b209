// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"fmt"
	"image"
	"math"

	"github.com/vinylpress/vinylpress/raster"
	"github.com/vinylpress/vinylpress/utils"
)

// Spin wraps a strip into a disk of radius equal to the strip height.
// Disk pixel (x, y) at distance r and angle θ from the centre reads the
// strip at (⌊lerp(θ, -π, π, 0, w)⌋, ⌊r⌋). Pixels that map past the strip
// stay transparent, including the seam ray at angle π, which maps to
// column w.
func Spin(img image.Image) (*image.RGBA, error) {
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	side := 2 * sh
	dst, err := raster.New(side, side)
	if err != nil {
		return nil, err
	}

	c := float64(side) / 2
	for y := range side {
		dy := float64(y) - c
		for x := range side {
			dx := float64(x) - c

			a := math.Atan2(dy, dx)
			if a < -math.Pi || a > math.Pi {
				return nil, fmt.Errorf("disk pixel (%d,%d) angle %v: %w", x, y, a, ErrAngleRange)
			}

			sx := int(math.Floor(utils.Lerp(a, -math.Pi, math.Pi, 0, float64(sw))))
			sy := int(math.Floor(math.Hypot(dx, dy)))
			if sx < 0 || sx >= sw || sy < 0 || sy >= sh {
				continue
			}

			raster.SetGray(dst, x, y, uint8(math.Floor(255*raster.Brightness(src, sx, sy))))
		}
	}

	return dst, nil
}
