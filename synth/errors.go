// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid synthesizer config")
	ErrUnknownWeight = errors.New("unknown weight policy")
)
