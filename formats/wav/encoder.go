// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/utils"
)

// chunkFrames bounds the frames converted per write.
const chunkFrames = 8192

// WriteBuffer encodes buf as a mono 16-bit PCM WAV. Samples outside
// [-1, 1] are clipped unless normalize is set, in which case the whole
// buffer is scaled down so its peak sits at full scale.
func WriteBuffer(w io.WriteSeeker, buf *audio.Buffer, normalize bool) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}

	gain := float32(1)
	if normalize {
		gain = utils.PeakGain(buf.Samples)
	}

	enc := wav.NewEncoder(w, buf.SampleRate, 16, 1, formatPCM)
	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: buf.SampleRate},
		Data:           make([]int, min(buf.Len(), chunkFrames)),
		SourceBitDepth: 16,
	}

	for i := 0; i < buf.Len(); i += chunkFrames {
		chunk := buf.Samples[i:min(i+chunkFrames, buf.Len())]
		ib.Data = ib.Data[:len(chunk)]
		for j, s := range chunk {
			ib.Data[j] = int(utils.Float32ToInt16(s * gain))
		}

		if err := enc.Write(ib); err != nil {
			return fmt.Errorf("encoding wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}

// WriteWAV16 streams a mono 16-bit PCM WAV to a writer that cannot seek,
// such as a pipe: the header is computed up front from len(samples).
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if sampleRate <= 0 {
		return audio.ErrInvalidRate
	}

	const (
		channels      = 1
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
	)
	dataSize := uint32(len(samples) * blockAlign)

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	out := make([]byte, 2*min(len(samples), chunkFrames))
	for i := 0; i < len(samples); i += chunkFrames {
		chunk := samples[i:min(i+chunkFrames, len(samples))]
		b := out[:2*len(chunk)]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(b[2*j:], uint16(s))
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

// PCM16 converts buf to 16-bit samples for WriteWAV16, with the same
// clipping and normalisation rules as WriteBuffer.
func PCM16(buf *audio.Buffer, normalize bool) []int16 {
	gain := float32(1)
	if normalize {
		gain = utils.PeakGain(buf.Samples)
	}

	out := make([]int16, buf.Len())
	for i, s := range buf.Samples {
		out[i] = utils.Float32ToInt16(s * gain)
	}
	return out
}
