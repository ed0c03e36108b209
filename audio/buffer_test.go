// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/internal/audiotest"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewBuffer(8000, 800)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if buf.Len() != 800 {
		t.Errorf("Len() = %d, want 800", buf.Len())
	}
	if buf.Duration() != 100*time.Millisecond {
		t.Errorf("Duration() = %v, want 100ms", buf.Duration())
	}
	if buf.Seconds() != 0.1 {
		t.Errorf("Seconds() = %v, want 0.1", buf.Seconds())
	}

	if _, err := audio.NewBuffer(0, 10); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("NewBuffer(0, 10) error = %v, want ErrInvalidRate", err)
	}
}

func TestBuffer_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *audio.Buffer
		want error
	}{
		{"nil", nil, audio.ErrEmptyBuffer},
		{"empty", &audio.Buffer{SampleRate: 8000}, audio.ErrEmptyBuffer},
		{"bad rate", &audio.Buffer{Samples: []float32{0}}, audio.ErrInvalidRate},
		{"ok", audiotest.Silence(8000, 4), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.buf.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuffer_Peak(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{SampleRate: 1, Samples: []float32{0.5, -3, 2}}
	if got := buf.Peak(); got != 3 {
		t.Errorf("Peak() = %v, want 3", got)
	}
}

func TestBuffer_ReaderRoundTrip(t *testing.T) {
	t.Parallel()

	tone := audiotest.Tone(8000, 10000, 440, 0.5)

	got, err := audio.ReadAll(tone.NewReader())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", got.SampleRate)
	}
	if got.Len() != tone.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), tone.Len())
	}
	for i := range got.Samples {
		if got.Samples[i] != tone.Samples[i] {
			t.Fatalf("sample %d = %v, want %v", i, got.Samples[i], tone.Samples[i])
		}
	}
}

func TestBuffer_ReaderIsIndependent(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{SampleRate: 4, Samples: []float32{1, 2, 3}}
	a := buf.NewReader()
	b := buf.NewReader()

	dst := make([]float32, 2)
	if n, err := a.ReadSamples(dst); n != 2 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v", n, err)
	}
	if n, err := a.ReadSamples(dst); n != 1 || err != io.EOF {
		t.Fatalf("second ReadSamples() = %d, %v, want 1, EOF", n, err)
	}
	if n, _ := b.ReadSamples(dst); n != 2 || dst[0] != 1 {
		t.Errorf("independent reader got n=%d dst[0]=%v, want 2, 1", n, dst[0])
	}
}

func TestReadAll_RejectsStereo(t *testing.T) {
	t.Parallel()

	_, err := audio.ReadAll(audiotest.NewSilentSource(8000, 2, 10))
	if !errors.Is(err, audio.ErrNotMono) {
		t.Errorf("ReadAll(stereo) error = %v, want ErrNotMono", err)
	}
}

func TestReadAll_StalledSource(t *testing.T) {
	t.Parallel()

	_, err := audio.ReadAll(audiotest.NewStalledSource(8000, 1, 100))
	if !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("ReadAll() error = %v, want io.ErrNoProgress", err)
	}
}

func TestBand(t *testing.T) {
	t.Parallel()

	band := audio.Band{Min: 100, Max: 10000}

	if got := band.Frequency(0, 512); got != 100 {
		t.Errorf("Frequency(0, 512) = %v, want 100", got)
	}
	if got := band.Frequency(256, 512); got != 5050 {
		t.Errorf("Frequency(256, 512) = %v, want 5050", got)
	}

	for _, row := range []int{0, 17, 255, 511} {
		f := band.Frequency(row, 512)
		if back := band.Row(f, 512); math.Abs(back-float64(row)) > 1e-9 {
			t.Errorf("Row(Frequency(%d)) = %v", row, back)
		}
	}
}
