// SPDX-License-Identifier: EPL-2.0

package raster

import "errors"

var (
	// ErrInvalidInput rejects rasters or parameters no transform can work with.
	ErrInvalidInput = errors.New("invalid raster input")
)
