// SPDX-License-Identifier: EPL-2.0

package vinylpress

import "errors"

var ErrInvalidConfig = errors.New("invalid press config")
