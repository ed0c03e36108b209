// SPDX-License-Identifier: EPL-2.0

package spectral

import "errors"

var (
	// ErrCheckpointOrder is returned when a checkpoint does not come
	// strictly after the previous one.
	ErrCheckpointOrder = errors.New("checkpoints must be strictly increasing")
	// ErrClockRunning is returned when the clock is scheduled or started
	// after rendering began.
	ErrClockRunning  = errors.New("render clock already started")
	ErrInvalidConfig = errors.New("invalid analyzer config")
)
