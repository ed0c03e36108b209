// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// mockMP3Reader hands out little-endian int16 PCM in chunks of at most
// step bytes, which need not fall on a sample boundary.
type mockMP3Reader struct {
	data []byte
	step int
	err  error
}

func newMockReader(step int, samples ...int16) *mockMP3Reader {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &mockMP3Reader{data: data, step: step}
}

func (m *mockMP3Reader) SampleRate() int { return 44100 }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}

	n := copy(buf[:min(len(buf), m.step)], m.data)
	m.data = m.data[n:]
	return n, nil
}

func readAll(t *testing.T, s *source, size int) []float32 {
	t.Helper()

	var out []float32
	dst := make([]float32, size)
	for range 1000 {
		n, err := s.ReadSamples(dst)
		if n%channels != 0 {
			t.Fatalf("ReadSamples() returned %d samples, not whole frames", n)
		}
		out = append(out, dst[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("ReadSamples() never reached EOF")
	return nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, -32768, 32767, 1, 2, 3}
	want := []float32{0, 0.5, -0.5, -1, 32767.0 / 32768, 1.0 / 32768, 2.0 / 32768, 3.0 / 32768}

	tests := []struct {
		name string
		step int
		size int
	}{
		{"whole reads", 1 << 16, 64},
		{"split samples", 3, 64},
		{"split frames", 5, 4},
		{"tiny destination", 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &source{dec: newMockReader(tt.step, samples...), sampleRate: 44100}
			got := readAll(t, s, tt.size)

			if len(got) != len(want) {
				t.Fatalf("read %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := &source{dec: newMockReader(4), sampleRate: 32000, buf: make([]byte, 8192)}
	if s.SampleRate() != 32000 || s.Channels() != 2 || s.BufSize() != 4096 {
		t.Errorf("source = %d Hz x %d, buf %d", s.SampleRate(), s.Channels(), s.BufSize())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_Error(t *testing.T) {
	t.Parallel()

	m := newMockReader(4, 1, 2)
	m.err = io.ErrUnexpectedEOF
	s := &source{dec: m, sampleRate: 44100}

	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not MP3 data")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want an error")
			}
		})
	}
}
