// SPDX-License-Identifier: EPL-2.0

// Package rastertest builds deterministic rasters for tests.
package rastertest

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
)

// Solid returns a w x h raster filled with c.
func Solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// SolidNRGBA returns a w x h straight-alpha raster filled with c.
func SolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// SolidPaletted returns a w x h paletted raster whose single palette
// entry is c.
func SolidPaletted(w, h int, c color.Color) *image.Paletted {
	return image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{c})
}

// Black and White are opaque solid fills.
func Black(w, h int) *image.RGBA { return Solid(w, h, color.RGBA{A: 0xff}) }
func White(w, h int) *image.RGBA { return Solid(w, h, color.RGBA{0xff, 0xff, 0xff, 0xff}) }

// Radial returns a size x size opaque raster whose grey level at distance
// r from the centre is profile(r/(size/2)).
func Radial(size int, profile func(t float64) uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := range size {
		for x := range size {
			r := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			v := profile(r)
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
		}
	}
	return img
}

// Noise returns an opaque grey raster of uniformly random levels.
func Noise(w, h int, seed uint64) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		v := uint8(rng.IntN(256))
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
	}
	return img
}

// Column returns a 1 x h opaque raster whose row y has grey level levels[y].
func Column(levels []uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, len(levels)))
	for y, v := range levels {
		i := img.PixOffset(0, y)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
	}
	return img
}
