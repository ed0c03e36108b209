// SPDX-License-Identifier: EPL-2.0

package warp

import "math"

// Perspective fills the dw x dh single-channel image dst by sampling the
// sw x sh image src at m.Apply(x, y) for every destination pixel (x, y),
// with bilinear filtering. Samples within a pixel of the source edge are
// clamped to it; samples further out are 0.
func Perspective(src []uint8, sw, sh int, dst []uint8, dw, dh int, m Homography) {
	maxX, maxY := float64(sw), float64(sh)

	for y := range dh {
		row := dst[y*dw : (y+1)*dw]
		for x := range row {
			xs, ys := m.Apply(float64(x), float64(y))
			if !(xs > -1 && xs < maxX && ys > -1 && ys < maxY) {
				row[x] = 0
				continue
			}

			fx, fy := math.Floor(xs), math.Floor(ys)
			ix, iy := int(fx), int(fy)
			ax, ay := xs-fx, ys-fy

			x0, x1 := clamp(ix, sw), clamp(ix+1, sw)
			y0, y1 := clamp(iy, sh)*sw, clamp(iy+1, sh)*sw

			p00, p01 := float64(src[y0+x0]), float64(src[y0+x1])
			p10, p11 := float64(src[y1+x0]), float64(src[y1+x1])

			top := p00 + ax*(p01-p00)
			bottom := p10 + ax*(p11-p10)
			row[x] = uint8(top + ay*(bottom-top) + 0.5)
		}
	}
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}
