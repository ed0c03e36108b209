// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/vinylpress/vinylpress"
	"github.com/vinylpress/vinylpress/audio"
	"github.com/vinylpress/vinylpress/formats/aiff"
	"github.com/vinylpress/vinylpress/formats/mp3"
	"github.com/vinylpress/vinylpress/formats/vorbis"
	"github.com/vinylpress/vinylpress/formats/wav"
)

var errUnknownFormat = errors.New("unknown audio format")

func newRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

func isAudio(r *audio.Registry, path string) bool {
	_, ok := r.ForFile(path)
	return ok
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// readAudio decodes path with the decoder its extension selects and
// brings it to cfg's rate in mono.
func readAudio(r *audio.Registry, path string, cfg vinylpress.Config) (*audio.Buffer, error) {
	dec, ok := r.ForFile(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w (known: %s)", path, errUnknownFormat, strings.Join(r.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return vinylpress.LoadAudio(src, cfg)
}

func writeWAV(path string, buf *audio.Buffer, normalize bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wav.WriteBuffer(f, buf, normalize); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// outputPath names a file inside dir, creating dir when missing.
func outputPath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
