// SPDX-License-Identifier: EPL-2.0

// Package playback loops audio buffers on the default output device
// through oto. Play is fire-and-forget; the device keeps pulling from an
// endless reader until Stop.
package playback
