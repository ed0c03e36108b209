// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Integer PCM at 16, 24 or 32 bits is supported, with any channel count
// and sample rate. Samples come out as float32 in [-1, 1):
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not a FORM/AIFF container
//	}
//
// The go-audio decoder seeks between chunks. Readers that cannot seek are
// buffered in memory first.
package aiff
