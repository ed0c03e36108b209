// SPDX-License-Identifier: EPL-2.0

package warp

import "errors"

var (
	// ErrDegenerate means the four anchors do not determine an invertible
	// homography, usually because three of them are colinear.
	ErrDegenerate = errors.New("degenerate homography")
)
