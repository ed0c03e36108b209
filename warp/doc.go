// SPDX-License-Identifier: EPL-2.0

// Package warp rectifies a tracked quadrilateral of a camera frame onto a
// fixed canvas.
//
// Solve finds the homography taking four screen anchors to the canvas
// corners; Perspective resamples a grey image through its inverse. The
// Compositor runs the whole per-frame path (scale, mask, grey, warp,
// repack) on scratch buffers it keeps between frames, and treats an
// anchor configuration without an inverse as a skipped frame rather than
// an error.
package warp
