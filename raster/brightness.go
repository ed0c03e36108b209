// SPDX-License-Identifier: EPL-2.0

package raster

import "image"

// Brightness returns (R+G+B)/3/255 for the pixel at (x, y), relative to
// the raster origin. x and y must lie inside the raster; the caller
// bounds-checks.
func Brightness(img *image.RGBA, x, y int) float64 {
	i := y*img.Stride + x*4
	p := img.Pix[i : i+3 : i+3]

	return float64(int(p[0])+int(p[1])+int(p[2])) / 3 / 255
}

// Luminance fills dst with the brightness of column x, top row first, and
// returns it. dst is grown to the raster height when too short.
func Luminance(img *image.RGBA, x int, dst []float64) []float64 {
	h := img.Rect.Dy()
	if cap(dst) < h {
		dst = make([]float64, h)
	}
	dst = dst[:h]

	for y := range h {
		dst[y] = Brightness(img, x, y)
	}
	return dst
}

// LuminanceRow fills dst with the brightness of row y, left to right.
func LuminanceRow(img *image.RGBA, y int, dst []float64) []float64 {
	w := img.Rect.Dx()
	if cap(dst) < w {
		dst = make([]float64, w)
	}
	dst = dst[:w]

	for x := range w {
		dst[x] = Brightness(img, x, y)
	}
	return dst
}

// Gray converts img to 8-bit luma into dst (grown when too short), using
// the fixed-point weights 0.299/0.587/0.114 in Q14.
func Gray(img *image.RGBA, dst []uint8) []uint8 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if cap(dst) < w*h {
		dst = make([]uint8, w*h)
	}
	dst = dst[:w*h]

	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		out := dst[y*w : (y+1)*w]
		for x := range out {
			p := row[x*4 : x*4+3 : x*4+3]
			out[x] = uint8((int(p[0])*4899 + int(p[1])*9617 + int(p[2])*1868 + 8192) >> 14)
		}
	}
	return dst
}
