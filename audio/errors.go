// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrEmptyBuffer    = errors.New("audio buffer has no samples")
	ErrNotMono        = errors.New("source must be mono")
	ErrInvalidRate    = errors.New("sample rate must be positive")
)
