// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// The Decoder accepts integer PCM at 16, 24 or 32 bits, any channel
// count and any sample rate, and yields float32 samples in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(f)
//
// Pressed audio is exported with WriteBuffer, which needs a seekable
// writer such as an *os.File:
//
//	err := wav.WriteBuffer(f, buf, true) // peak-normalised 16-bit mono
//
// Synthesised buffers routinely exceed unit amplitude. Without
// normalisation they are hard-clipped at full scale.
//
// WriteWAV16 writes the same layout to writers that cannot seek, computing
// the header from the sample count before any data.
package wav
