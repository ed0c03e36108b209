// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is wrapped by every GeometryError.
	ErrOutOfBounds = errors.New("sample position is out of bounds")
	// ErrAngleRange reports an atan2 result outside [-π, π]. It cannot
	// happen with a conforming math library.
	ErrAngleRange = errors.New("angle outside [-pi, pi]")
)

// GeometryError reports an unwrap sample that falls outside the source
// raster, which means the annulus is not inscribed in it.
type GeometryError struct {
	DestX, DestY  int // pixel of the unwrapped raster being filled
	SrcX, SrcY    int // source pixel it mapped to
	Width, Height int // source raster size
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("unwrap pixel (%d,%d) samples (%d,%d) outside %dx%d: %v",
		e.DestX, e.DestY, e.SrcX, e.SrcY, e.Width, e.Height, ErrOutOfBounds)
}

func (e *GeometryError) Unwrap() error { return ErrOutOfBounds }
