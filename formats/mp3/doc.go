// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo, so the Source reports two
// channels even for mono files; pass it through audio.NewMonoMixer before
// analysis. Samples are float32 in [-1, 1) and reads always end on a
// whole stereo frame.
package mp3
