// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"fmt"
	"image"
	"math"

	"github.com/vinylpress/vinylpress/raster"
	"github.com/vinylpress/vinylpress/utils"
)

// Annulus is a ring in source pixel coordinates.
type Annulus struct {
	CenterX, CenterY float64
	Inner, Outer     float64 // radii
}

// Inscribed returns the largest annulus centred on a w x h raster whose
// inner radius is ratio times its outer radius.
func Inscribed(w, h int, ratio float64) Annulus {
	outer := min(float64(w)/2, float64(h)/2)
	return Annulus{
		CenterX: float64(w) / 2,
		CenterY: float64(h) / 2,
		Inner:   ratio * outer,
		Outer:   outer,
	}
}

// Size is the unwrapped raster size: ⌊Outer·π⌋ x ⌊Outer-Inner⌋.
func (a Annulus) Size() (w, h int) {
	return int(math.Floor(a.Outer * math.Pi)), int(math.Floor(a.Outer - a.Inner))
}

// Unspin unwraps the ring inscribed in img whose hole is centerRatio of
// its radius.
func Unspin(img image.Image, centerRatio float64) (*image.RGBA, error) {
	if err := raster.Validate(img); err != nil {
		return nil, err
	}
	if !(centerRatio >= 0 && centerRatio < 1) {
		return nil, fmt.Errorf("center ratio %v: %w", centerRatio, raster.ErrInvalidInput)
	}

	b := img.Bounds()
	return UnspinAnnulus(img, Inscribed(b.Dx(), b.Dy(), centerRatio))
}

// UnspinAnnulus unwraps ring a of img. Destination pixel (x, y) reads the
// source at radius lerp(y, 0, h, Inner, Outer) and angle
// lerp(x, 0, w, 0, 2π), rounded down, and stores its brightness as an
// opaque grey. Any sample outside img aborts with a *GeometryError.
func UnspinAnnulus(img image.Image, a Annulus) (*image.RGBA, error) {
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	if !(a.Inner >= 0 && a.Outer > a.Inner) {
		return nil, fmt.Errorf("annulus radii %v-%v: %w", a.Inner, a.Outer, raster.ErrInvalidInput)
	}

	w, h := a.Size()
	dst, err := raster.New(w, h)
	if err != nil {
		return nil, err
	}

	sw, sh := src.Rect.Dx(), src.Rect.Dy()

	cos := make([]float64, w)
	sin := make([]float64, w)
	for x := range w {
		theta := utils.Lerp(float64(x), 0, float64(w), 0, 2*math.Pi)
		sin[x], cos[x] = math.Sincos(theta)
	}

	for y := range h {
		r := utils.Lerp(float64(y), 0, float64(h), a.Inner, a.Outer)
		for x := range w {
			sx := int(math.Floor(a.CenterX + r*cos[x]))
			sy := int(math.Floor(a.CenterY + r*sin[x]))
			if sx < 0 || sx >= sw || sy < 0 || sy >= sh {
				return nil, &GeometryError{DestX: x, DestY: y, SrcX: sx, SrcY: sy, Width: sw, Height: sh}
			}

			raster.SetGray(dst, x, y, uint8(math.Floor(255*raster.Brightness(src, sx, sy))))
		}
	}

	return dst, nil
}
