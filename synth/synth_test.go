// SPDX-License-Identifier: EPL-2.0

package synth_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/internal/rastertest"
	"github.com/vinylpress/vinylpress/raster"
	"github.com/vinylpress/vinylpress/synth"
)

// testConfig keeps buffers short enough for unit tests.
func testConfig() synth.Config {
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 8000
	cfg.Band = audio.Band{Min: 100, Max: 3900}
	cfg.SquareImageTime = 0.25
	return cfg
}

func newSynth(t *testing.T, cfg synth.Config) *synth.Synthesizer {
	t.Helper()

	s, err := synth.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSynthesize_Length(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	s := newSynth(t, cfg)

	tests := []struct {
		w, h int
	}{
		{64, 64},
		{100, 37},
		{3, 7},
		{1, 1},
		{640, 480},
		{7, 300},
	}

	for _, tt := range tests {
		t.Run(image.Pt(tt.w, tt.h).String(), func(t *testing.T) {
			t.Parallel()

			buf, err := s.Synthesize(context.Background(), rastertest.White(tt.w, tt.h))
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}

			want := int(math.Ceil(float64(tt.w) / float64(tt.h) * float64(cfg.SampleRate) * cfg.SquareImageTime))
			if buf.Len() != want {
				t.Errorf("Synthesize(%dx%d) length = %d, want %d", tt.w, tt.h, buf.Len(), want)
			}
			if buf.SampleRate != cfg.SampleRate {
				t.Errorf("SampleRate = %d, want %d", buf.SampleRate, cfg.SampleRate)
			}
		})
	}
}

func TestColumnSpan_Tiles(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ w, length int }{{64, 2000}, {7, 1000}, {1000, 999}, {3, 3}} {
		next := 0
		for x := range tc.w {
			start, end := synth.ColumnSpan(x, tc.w, tc.length)
			if start != next || end < start {
				t.Fatalf("ColumnSpan(%d, %d, %d) = [%d, %d), want start %d", x, tc.w, tc.length, start, end, next)
			}
			next = end
		}
		if next != tc.length {
			t.Errorf("spans for w=%d end at %d, want %d", tc.w, next, tc.length)
		}
	}
}

func TestSynthesize_Finite(t *testing.T) {
	t.Parallel()

	for _, policy := range []synth.WeightPolicy{synth.WeightInk, synth.WeightBrightness} {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			cfg.Weight = policy
			buf, err := newSynth(t, cfg).Synthesize(context.Background(), rastertest.Noise(48, 40, 3))
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}

			for i, v := range buf.Samples {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("sample %d = %v, want finite", i, v)
				}
			}
		})
	}
}

func TestSynthesize_TallRasterStaysFinite(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SquareImageTime = 0.01
	buf, err := newSynth(t, cfg).Synthesize(context.Background(), rastertest.Black(2, synth.PhaseTableSize+200))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	for i, v := range buf.Samples {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("sample %d = %v, want finite", i, v)
		}
	}
}

func TestSynthesize_BlackIsLoudWhiteIsQuiet(t *testing.T) {
	t.Parallel()

	s := newSynth(t, testConfig())

	white, err := s.Synthesize(context.Background(), rastertest.White(64, 64))
	if err != nil {
		t.Fatalf("Synthesize(white) error = %v", err)
	}
	if peak := white.Peak(); peak != 0 {
		t.Errorf("white raster peak = %v, want 0", peak)
	}

	black, err := s.Synthesize(context.Background(), rastertest.Black(64, 64))
	if err != nil {
		t.Fatalf("Synthesize(black) error = %v", err)
	}

	// 64 unit oscillators: never above 64, and with random phases well
	// above the single-oscillator level
	peak := black.Peak()
	if peak > 64+1e-3 {
		t.Errorf("black raster peak = %v, exceeds 64 active rows", peak)
	}
	if peak < 8 {
		t.Errorf("black raster peak = %v, want a loud signal", peak)
	}

	var energy float64
	for _, v := range black.Samples {
		energy += float64(v) * float64(v)
	}
	rms := math.Sqrt(energy / float64(black.Len()))
	// independent unit sines: rms ≈ sqrt(64/2)
	if rms < 4 || rms > 8 {
		t.Errorf("black raster rms = %v, want about %v", rms, math.Sqrt(32))
	}
}

func TestSynthesize_MatchesDirectSum(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Weight = synth.WeightBrightness
	img := rastertest.Noise(5, 12, 11)

	buf, err := newSynth(t, cfg).Synthesize(context.Background(), img)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	w, h := 5, 12
	for _, i := range []int{0, 1, 77, 199, 200, 201, 399, 400, 811, buf.Len() - 1} {
		x := 0
		for x < w-1 {
			if _, end := synth.ColumnSpan(x, w, buf.Len()); i < end {
				break
			}
			x++
		}

		tt := float64(i) / float64(cfg.SampleRate)
		var want float64
		for k := range h {
			f := cfg.Band.Frequency(k, h)
			want += raster.Brightness(img, x, k) * math.Sin(2*math.Pi*f*tt+synth.Phase(k))
		}

		if diff := math.Abs(float64(buf.Samples[i]) - want); diff > 1e-4 {
			t.Errorf("sample %d (column %d) = %v, want %v", i, x, buf.Samples[i], want)
		}
	}
}

func TestSynthesize_WorkersDoNotChangeOutput(t *testing.T) {
	t.Parallel()

	img := rastertest.Noise(37, 20, 5)

	cfg := testConfig()
	cfg.Workers = 1
	serial, err := newSynth(t, cfg).Synthesize(context.Background(), img)
	if err != nil {
		t.Fatalf("Synthesize(serial) error = %v", err)
	}

	cfg.Workers = 6
	parallel, err := newSynth(t, cfg).Synthesize(context.Background(), img)
	if err != nil {
		t.Fatalf("Synthesize(parallel) error = %v", err)
	}

	for i := range serial.Samples {
		if serial.Samples[i] != parallel.Samples[i] {
			t.Fatalf("sample %d differs: serial %v, parallel %v", i, serial.Samples[i], parallel.Samples[i])
		}
	}
}

func TestSynthesize_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSynth(t, testConfig()).Synthesize(ctx, rastertest.Black(16, 16))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Synthesize(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestSynthesize_AlphaIgnored(t *testing.T) {
	t.Parallel()

	s := newSynth(t, testConfig())
	grey := color.NRGBA{200, 200, 200, 255}

	want, err := s.Synthesize(context.Background(), rastertest.SolidNRGBA(8, 8, grey))
	if err != nil {
		t.Fatalf("Synthesize(opaque) error = %v", err)
	}

	translucent := grey
	translucent.A = 100

	tests := []struct {
		name string
		img  image.Image
	}{
		{"translucent nrgba", rastertest.SolidNRGBA(8, 8, translucent)},
		{"transparent nrgba", rastertest.SolidNRGBA(8, 8, color.NRGBA{200, 200, 200, 0})},
		{"paletted", rastertest.SolidPaletted(8, 8, translucent)},
		{"opaque rgba", rastertest.Solid(8, 8, color.RGBA{200, 200, 200, 255})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.Synthesize(context.Background(), tt.img)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if got.Len() != want.Len() {
				t.Fatalf("Synthesize() length = %d, want %d", got.Len(), want.Len())
			}
			for i := range got.Samples {
				if got.Samples[i] != want.Samples[i] {
					t.Fatalf("sample %d = %v, want %v as for the opaque raster", i, got.Samples[i], want.Samples[i])
				}
			}
		})
	}

	white, err := s.Synthesize(context.Background(), rastertest.SolidNRGBA(8, 8, color.NRGBA{255, 255, 255, 10}))
	if err != nil {
		t.Fatalf("Synthesize(white) error = %v", err)
	}
	if peak := white.Peak(); peak != 0 {
		t.Errorf("translucent white peak = %v, want 0", peak)
	}
}

func TestSynthesize_InvalidInput(t *testing.T) {
	t.Parallel()

	s := newSynth(t, testConfig())

	tests := []struct {
		name string
		img  image.Image
	}{
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 10))},
		{"nil", nil},
		{"too wide", rastertest.Black(raster.MaxSide+1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := s.Synthesize(context.Background(), tt.img); !errors.Is(err, raster.ErrInvalidInput) {
				t.Errorf("Synthesize() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSynthesize_LengthOverflow(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SquareImageTime = 1e20
	if _, err := synth.New(cfg); !errors.Is(err, synth.ErrInvalidConfig) {
		t.Fatalf("New(square time 1e20) error = %v, want ErrInvalidConfig", err)
	}

	// the largest square time New accepts still overflows on a wide raster
	cfg.SquareImageTime = float64(synth.MaxSamples) / float64(cfg.SampleRate)
	s := newSynth(t, cfg)

	_, err := s.Synthesize(context.Background(), rastertest.Black(4, 1))
	if !errors.Is(err, raster.ErrInvalidInput) {
		t.Errorf("Synthesize(4x1) error = %v, want ErrInvalidInput", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*synth.Config)
		want   error
	}{
		{"default", func(*synth.Config) {}, nil},
		{"zero rate", func(c *synth.Config) { c.SampleRate = 0 }, synth.ErrInvalidConfig},
		{"inverted band", func(c *synth.Config) { c.Band = audio.Band{Min: 500, Max: 100} }, synth.ErrInvalidConfig},
		{"zero time", func(c *synth.Config) { c.SquareImageTime = 0 }, synth.ErrInvalidConfig},
		{"nan time", func(c *synth.Config) { c.SquareImageTime = math.NaN() }, synth.ErrInvalidConfig},
		{"huge time", func(c *synth.Config) { c.SquareImageTime = 1e20 }, synth.ErrInvalidConfig},
		{"unknown weight", func(c *synth.Config) { c.Weight = 9 }, synth.ErrUnknownWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := synth.DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
			if _, err := synth.New(cfg); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkSynthesize(b *testing.B) {
	s, err := synth.New(testConfig())
	if err != nil {
		b.Fatal(err)
	}
	img := rastertest.Noise(64, 64, 1)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := s.Synthesize(context.Background(), img); err != nil {
			b.Fatal(err)
		}
	}
}
