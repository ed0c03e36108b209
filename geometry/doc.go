// SPDX-License-Identifier: EPL-2.0

// Package geometry converts between a disk and its unrolled strip.
//
// Unspin reads an annulus in polar coordinates and lays it out as a
// rectangle: angle runs left to right, radius top to bottom starting at
// the inner edge. Spin goes the other way, wrapping a strip into a disk
// whose radius is the strip height. The pair is a lossy round trip: both
// directions sample the nearest pixel without filtering.
//
// The two directions treat bounds differently. Unspin assumes the annulus
// lies inside the source and fails with a *GeometryError the moment a
// sample does not; Spin leaves unmapped pixels transparent.
package geometry
