// SPDX-License-Identifier: EPL-2.0

// Package vinylpress turns pictures of records into sound and sound back
// into pictures of records.
//
// A photographed disk is unspun into a rectangle, each column of that
// rectangle is played as a bank of sine waves (top row lowest), the
// result is analysed into a spectrogram, and the spectrogram is spun
// back into a disk:
//
//	cfg := vinylpress.DefaultConfig()
//	p, err := vinylpress.Press(ctx, img, cfg)
//	if err != nil {
//		return err
//	}
//	// p.Audio is mono float32 at cfg.SampleRate, p.Art is the new label.
//
// # Packages
//
// The stages live in their own packages and can be driven directly:
//
//   - geometry: Unspin and Spin between disks and rectangles
//   - synth: raster to audio
//   - spectral: audio to spectrogram through a virtual render clock
//   - warp: live camera compositing onto the canonical canvas
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: import and export
//   - playback: looping output to the default device
//
// # Loading audio
//
// LoadAudio brings any decoded audio.Source to the configured rate in
// mono so it can be analysed:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := vinylpress.LoadAudio(src, cfg)
//	art, err := analyzer.CoverArt(ctx, buf).Wait()
package vinylpress
