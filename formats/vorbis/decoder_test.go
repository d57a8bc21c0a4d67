// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/internal/audiotest"
)

// mockOggVorbisReader hands out whole frames like oggvorbis.Reader.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	n := copy(buf, m.samples)
	n -= n % m.channels
	m.samples = m.samples[n:]
	return n, nil
}

func newSource(rate, channels int, samples []float32) *source {
	return &source{
		dec:        &mockOggVorbisReader{sampleRate: rate, channels: channels, samples: samples},
		sampleRate: rate,
		channels:   channels,
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("This is not Ogg Vorbis data"),
		"empty": nil,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(44100, 2, nil)
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("format = %d Hz/%d ch, want 44100 Hz/2 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize()%2 != 0 {
		t.Errorf("BufSize() = %d, want whole stereo frames", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
	}{
		{"mono", 1, 5000},
		{"stereo", 2, 4999},
		{"5.1", 6, 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := audiotest.Ramp(tt.channels, tt.frames)
			got, err := audio.ReadAll(newSource(48000, tt.channels, samples))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			want, _ := audio.NewBuffer(48000, tt.channels, samples)
			if !got.Equal(want) {
				t.Errorf("ReadAll() = %v, want %v", got, want)
			}
		})
	}
}

func TestSource_ReadSamples_PartialFrameDst(t *testing.T) {
	t.Parallel()

	src := newSource(44100, 2, []float32{0.1, 0.2, 0.3, 0.4})

	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Fatalf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if dst[0] != 0.1 || dst[1] != 0.2 {
		t.Errorf("dst = %v", dst[:2])
	}
}

func TestSource_ReadSamples_TooSmallDst(t *testing.T) {
	t.Parallel()

	src := newSource(44100, 2, []float32{0.1, 0.2})

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want %v", err, audio.ErrInvalidDstSize)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 1, err: io.ErrUnexpectedEOF}, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := audiotest.Sine(44100, 2, 44100, 440)
	dst := make([]float32, 4096)

	for b.Loop() {
		src := newSource(44100, 2, samples)
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
