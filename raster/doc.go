// SPDX-License-Identifier: EPL-2.0

// Package raster holds the pixel model every stage of the press works on:
// an 8-bit RGBA, row-major *image.RGBA.
//
// # Brightness
//
// Brightness is the unweighted mean of the colour channels scaled to
// [0, 1]; alpha is ignored:
//
//	b := raster.Brightness(img, x, y) // (R+G+B)/3/255
//
// Gray is the fixed-point luma used by the perspective compositor. It
// weights green heavier and is not interchangeable with Brightness.
//
// # Validation
//
// Every transform that accepts a raster calls Validate before allocating
// its output. Empty or absurdly large rasters yield ErrInvalidInput.
package raster
