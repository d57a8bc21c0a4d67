// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"testing"

	"github.com/ik5/audsr/internal/audiotest"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewConstantSource(44100, 2, 100, 0), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_CaseAndDotInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}
	registry.Register(".WAV", decoder)

	for _, key := range []string{"wav", ".wav", "WaV"} {
		if got, ok := registry.Get(key); !ok || got != decoder {
			t.Errorf("Registry.Get(%q) = %v, %v; want registered decoder", key, got, ok)
		}
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	registry.Register("wav", wavDecoder)
	registry.Register("mp3", mp3Decoder)

	tests := []struct {
		path   string
		want   Decoder
		wantOK bool
	}{
		{"/music/song.wav", wavDecoder, true},
		{"take.2.MP3", mp3Decoder, true},
		{"clip.flac", nil, false},
		{"no_extension", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, ok := registry.ForPath(tt.path)
			if ok != tt.wantOK {
				t.Errorf("ForPath(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("ForPath(%q) returned wrong decoder", tt.path)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("ogg", &mockDecoder{})
	registry.Register("WAV", &mockDecoder{})
	registry.Register("aiff", &mockDecoder{})

	want := []string{"aiff", "ogg", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			done <- true
		}()
	}
	for range 20 {
		<-done
	}

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}
