// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/internal/audiotest"
)

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestLoop_WrapsAndClamps(t *testing.T) {
	t.Parallel()

	l := newLoop([]float32{0.5, 2, -3, float32(math.NaN())})

	p := make([]byte, 10*bytesPerSample)
	n, err := l.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read() = %d, %v, want %d, nil", n, err, len(p))
	}

	want := []float32{0.5, 1, -1, 0, 0.5, 1, -1, 0, 0.5, 1}
	got := decode(p)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoop_SplitSamples(t *testing.T) {
	t.Parallel()

	samples := []float32{0.1, -0.2, 0.3}

	// reads of odd sizes must produce the same stream as aligned ones
	for _, size := range []int{1, 3, 5, 7} {
		l := newLoop(samples)

		var stream []byte
		chunk := make([]byte, size)
		for len(stream) < 6*bytesPerSample {
			n, err := l.Read(chunk)
			if err != nil {
				t.Fatalf("Read(%d) error = %v", size, err)
			}
			stream = append(stream, chunk[:n]...)
		}

		got := decode(stream[:6*bytesPerSample])
		for i, v := range got {
			if v != samples[i%len(samples)] {
				t.Errorf("chunk %d: sample %d = %v, want %v", size, i, v, samples[i%len(samples)])
			}
		}
	}
}

func TestLoop_NeverEnds(t *testing.T) {
	t.Parallel()

	l := newLoop([]float32{0})
	if _, err := io.ReadFull(l, make([]byte, 1<<16)); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
}

func TestPlayer_Prepare(t *testing.T) {
	t.Parallel()

	p := &Player{rate: 8000}

	same := audiotest.Tone(8000, 800, 440, 0.5)
	got, err := p.prepare(same)
	if err != nil {
		t.Fatalf("prepare() error = %v", err)
	}
	if &got[0] != &same.Samples[0] {
		t.Error("prepare() copied a buffer already at the device rate")
	}

	got, err = p.prepare(audiotest.Tone(16000, 1600, 440, 0.5))
	if err != nil {
		t.Fatalf("prepare() error = %v", err)
	}
	if len(got) < 760 || len(got) > 840 {
		t.Errorf("prepare() resampled length = %d, want ≈800", len(got))
	}

	if _, err := p.prepare(&audio.Buffer{SampleRate: 8000}); !errors.Is(err, audio.ErrEmptyBuffer) {
		t.Errorf("prepare(empty) error = %v, want ErrEmptyBuffer", err)
	}
}

func TestNew_InvalidRate(t *testing.T) {
	t.Parallel()

	if _, err := New(0); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("New(0) error = %v, want ErrInvalidRate", err)
	}
}

func BenchmarkLoop_Read(b *testing.B) {
	l := newLoop(audiotest.Tone(44100, 44100, 440, 0.5).Samples)
	p := make([]byte, 4096)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = l.Read(p)
	}
}
