// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var ErrRateMismatch = errors.New("playback context already running at another sample rate")
