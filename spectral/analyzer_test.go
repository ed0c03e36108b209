// SPDX-License-Identifier: EPL-2.0

package spectral_test

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/internal/audiotest"
	"github.com/vinylpress/vinylpress/raster"
	"github.com/vinylpress/vinylpress/spectral"
)

const testRate = 8000

func testConfig() spectral.Config {
	cfg := spectral.DefaultConfig()
	cfg.Band = audio.Band{Min: 100, Max: 3900}
	cfg.Width = 16
	cfg.Height = 128
	return cfg
}

func newAnalyzer(t *testing.T, cfg spectral.Config) *spectral.Analyzer {
	t.Helper()

	a, err := spectral.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func gray(img *image.RGBA, x, y int) uint8 {
	return img.Pix[img.PixOffset(x, y)]
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := spectral.DefaultConfig()
	if cfg.Width != 1608 || cfg.Height != 512 || cfg.FFTSize != 512 {
		t.Errorf("DefaultConfig() = %dx%d fft %d, want 1608x512 fft 512", cfg.Width, cfg.Height, cfg.FFTSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*spectral.Config)
	}{
		{"fft not power of two", func(c *spectral.Config) { c.FFTSize = 500 }},
		{"fft too small", func(c *spectral.Config) { c.FFTSize = 16 }},
		{"inverted decibels", func(c *spectral.Config) { c.MinDecibels, c.MaxDecibels = -30, -100 }},
		{"empty band", func(c *spectral.Config) { c.Band.Max = c.Band.Min }},
		{"zero width", func(c *spectral.Config) { c.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := spectral.DefaultConfig()
			tt.modify(&cfg)
			if _, err := spectral.New(cfg); err == nil {
				t.Error("New() error = nil, want an error")
			}
		})
	}
}

func TestAnalyze_ToneLandsOnItsRow(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	a := newAnalyzer(t, cfg)

	// pick the bin row 40 reads and play a tone at its centre
	probe := spectral.NewSpectrum(cfg.FFTSize, testRate, cfg.MinDecibels, cfg.MaxDecibels)
	rowBin := func(y int) int { return probe.BinForFrequency(cfg.Band.Frequency(y, cfg.Height)) }
	bin := rowBin(40)
	tone := audiotest.Tone(testRate, testRate, float64(bin)*probe.BinWidth(), 0.001)

	img, err := a.Analyze(context.Background(), tone, 0, 0).Wait()
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(cfg.Width, cfg.Height) {
		t.Fatalf("spectrogram size = %v, want %dx%d", got, cfg.Width, cfg.Height)
	}

	// from column 2 on, every snapshot has a full window of tone
	for x := 2; x < cfg.Width; x++ {
		peakRow := 0
		for y := range cfg.Height {
			if gray(img, x, y) > gray(img, x, peakRow) {
				peakRow = y
			}
		}
		if rowBin(peakRow) != bin {
			t.Errorf("column %d peaks at row %d (bin %d), want bin %d", x, peakRow, rowBin(peakRow), bin)
		}
		if gray(img, x, 40) == 0 || gray(img, x, 40) == 255 {
			t.Errorf("column %d tone row = %d, want an unsaturated level", x, gray(img, x, 40))
		}
	}
}

func TestAnalyze_PaintsEveryPixel(t *testing.T) {
	t.Parallel()

	a := newAnalyzer(t, testConfig())

	img, err := a.Analyze(context.Background(), audiotest.Silence(testRate, 4000), 24, 10).Wait()
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(24, 10) {
		t.Fatalf("spectrogram size = %v, want 24x10", got)
	}

	for y := range 10 {
		for x := range 24 {
			i := img.PixOffset(x, y)
			if img.Pix[i+3] != 0xff || img.Pix[i] != 0 {
				t.Fatalf("pixel (%d,%d) = %v, want opaque black", x, y, img.Pix[i:i+4])
			}
		}
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		buf           *audio.Buffer
		width, height int
	}{
		{"nil buffer", nil, 16, 16},
		{"empty buffer", audiotest.Silence(testRate, 0), 16, 16},
		{"fewer samples than columns", audiotest.Silence(testRate, 10), 16, 16},
		{"negative width", audiotest.Silence(testRate, 100), -1, 16},
		{"oversized height", audiotest.Silence(testRate, 100), 16, raster.MaxSide + 1},
	}

	a := newAnalyzer(t, testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := a.Analyze(context.Background(), tt.buf, tt.width, tt.height).Wait()
			if !errors.Is(err, raster.ErrInvalidInput) {
				t.Errorf("Analyze() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newAnalyzer(t, testConfig())
	_, err := a.Analyze(ctx, audiotest.Silence(testRate, testRate), 0, 0).Wait()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}

func TestCoverArt(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	a := newAnalyzer(t, cfg)

	const bin = 82
	probe := spectral.NewSpectrum(cfg.FFTSize, testRate, cfg.MinDecibels, cfg.MaxDecibels)
	tone := audiotest.Tone(testRate, testRate, bin*probe.BinWidth(), 0.001)

	job := a.CoverArt(context.Background(), tone)
	select {
	case <-job.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("CoverArt did not finish")
	}

	img, err := job.Wait()
	if err != nil {
		t.Fatalf("CoverArt() error = %v", err)
	}

	side := cfg.FFTSize / 2
	if got := img.Bounds().Size(); got != image.Pt(side, side) {
		t.Fatalf("cover art size = %v, want %dx%d", got, side, side)
	}

	// row y is the snapshot at frame y*len/side; 17 is the first with a full window
	for y := 17; y < side; y++ {
		peak := 0
		for x := range side {
			if gray(img, x, y) > gray(img, peak, y) {
				peak = x
			}
		}
		if peak != bin {
			t.Fatalf("row %d peaks at column %d, want %d", y, peak, bin)
		}
	}
}

func TestCoverArt_TooShort(t *testing.T) {
	t.Parallel()

	a := newAnalyzer(t, testConfig())
	_, err := a.CoverArt(context.Background(), audiotest.Silence(testRate, 100)).Wait()
	if !errors.Is(err, raster.ErrInvalidInput) {
		t.Errorf("CoverArt() error = %v, want ErrInvalidInput", err)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	a, err := spectral.New(spectral.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	tone := audiotest.Tone(44100, 44100*5, 1000, 0.01)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := a.Analyze(context.Background(), tone, 0, 0).Wait(); err != nil {
			b.Fatal(err)
		}
	}
}
