// SPDX-License-Identifier: EPL-2.0

// Package spectral turns audio back into pictures.
//
// A Clock plays a buffer through a Spectrum, the equivalent of a Web
// Audio AnalyserNode with a Blackman window and no smoothing, pausing at
// evenly spaced frames so a snapshot of the byte spectrum can be painted
// as one column (Analyze) or one row (CoverArt) of a grey raster.
// Rendering runs in the background; the returned Job reports completion.
package spectral
