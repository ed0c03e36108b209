// SPDX-License-Identifier: EPL-2.0

// Package synth turns a raster into sound by additive synthesis.
//
// The raster is scanned left to right. Each column becomes a slice of
// time; each row inside it drives one sine oscillator whose frequency is
// spread linearly over an audible Band, top row lowest. Oscillator k
// starts from a fixed random phase so columns do not all peak together.
//
// # Duration
//
// A square raster lasts Config.SquareImageTime seconds; wider rasters
// last proportionally longer:
//
//	frames := (width / height) * SampleRate * SquareImageTime
//
// The output has exactly ceil(frames) samples.
//
// # Loudness
//
// Output is not normalised. A column with many active rows sums many
// unit sines and can exceed 1.0 by a wide margin; encoders and playback
// decide how to bring it into range.
//
// # Weights
//
// WeightInk (the default) treats dark pixels as loud: brightness is
// inverted and hard-thresholded at 0.5, so a white background is silent.
// WeightBrightness uses raw brightness instead.
package synth
