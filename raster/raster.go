// SPDX-License-Identifier: EPL-2.0

package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// MaxSide bounds either dimension of a raster the press will allocate.
const MaxSide = 1 << 15

// Validate checks that img is non-nil and has a usable size.
func Validate(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil raster: %w", ErrInvalidInput)
	}

	b := img.Bounds()
	return ValidateSize(b.Dx(), b.Dy())
}

// ValidateSize checks a width and height before allocation.
func ValidateSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("raster size %dx%d: %w", w, h, ErrInvalidInput)
	}
	if w > MaxSide || h > MaxSide {
		return fmt.Errorf("raster size %dx%d exceeds %d: %w", w, h, MaxSide, ErrInvalidInput)
	}
	return nil
}

// New allocates a transparent w x h raster at the origin.
func New(w, h int) (*image.RGBA, error) {
	if err := ValidateSize(w, h); err != nil {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// FromImage converts any image to an RGBA raster with its origin at (0, 0).
// An RGBA already at the origin is returned as is.
//
// Rasters hold straight, unpremultiplied colour, as canvas image data
// does: translucent input keeps its R, G, B and carries alpha alongside.
// An *image.RGBA input is taken to be straight already.
func FromImage(img image.Image) (*image.RGBA, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.RGBA:
		copyRows(out, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride)
	case *image.NRGBA:
		copyRows(out, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride)
	default:
		for y := range b.Dy() {
			row := out.Pix[y*out.Stride:]
			for x := range b.Dx() {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
			}
		}
	}

	return out, nil
}

// copyRows copies 4-byte pixels row by row from pix into dst.
func copyRows(dst *image.RGBA, pix []uint8, stride int) {
	n := dst.Rect.Dx() * 4
	for y := range dst.Rect.Dy() {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+n], pix[y*stride:y*stride+n])
	}
}

// Scale resamples src into a new w x h raster with bilinear filtering.
func Scale(src image.Image, w, h int) (*image.RGBA, error) {
	if err := Validate(src); err != nil {
		return nil, err
	}
	dst, err := New(w, h)
	if err != nil {
		return nil, err
	}

	ScaleInto(dst, src)
	return dst, nil
}

// ScaleInto resamples src over the whole of dst. Sizes that already match
// are copied without filtering.
func ScaleInto(dst *image.RGBA, src image.Image) {
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// Clone returns a deep copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	out := &image.RGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// Fill paints every pixel of img with c.
func Fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// SetGray writes an opaque grey pixel at (x, y) relative to the raster origin.
func SetGray(img *image.RGBA, x, y int, v uint8) {
	i := y*img.Stride + x*4
	img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
}
