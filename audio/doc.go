// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample-level model shared by the press: the
// mono Buffer the synthesizer writes and the analyser reads, the Band
// that maps raster rows to frequencies, and the streaming Source chain
// used to bring decoded files to the press rate.
//
// Samples are float32 with full scale at ±1. Synthesised buffers are not
// normalised and may exceed that range; encoders and playback clip or
// normalise at the edge.
//
// A decoded file is brought to the press rate in mono by chaining
// sources and draining the result:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 44100))
//	buf, err := audio.ReadAll(mono)
//
// Sources return io.EOF, possibly together with the last samples, when
// the stream ends.
package audio
