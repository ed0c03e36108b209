// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float natively, so samples are written straight into
// the caller's buffer without conversion. Reads are trimmed to whole
// frames; a destination shorter than one frame is rejected with
// audio.ErrInvalidDstSize.
package vorbis
