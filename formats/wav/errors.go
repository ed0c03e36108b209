// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a RIFF/WAVE file with PCM data.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding indicates compressed or floating point samples.
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")

	// ErrUnsupportedBitDepth indicates a PCM depth other than 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrUnsupportedWavLayout indicates a header without a usable format.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
)
