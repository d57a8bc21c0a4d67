// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/internal/audiotest"
)

func constant(t testing.TB, rate, channels, frames int, v float32) *audio.Buffer {
	t.Helper()

	buf, err := audio.NewBuffer(rate, channels, audiotest.Constant(channels, frames, v))
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestCrossfade_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		rate           int
		aFrames        int
		bFrames        int
		ms             int
		wantFrames     int
		wantDurationMs int
	}{
		{"10 ms at 1 kHz", 1000, 1000, 500, 10, 1490, 1490},
		{"10 ms at 48 kHz", 48000, 48000, 48000, 10, 96000 - 480, 1990},
		{"zero crossfade", 8000, 800, 800, 0, 1600, 200},
		{"whole of b", 1000, 100, 20, 20, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := constant(t, tt.rate, 2, tt.aFrames, 0.25)
			b := constant(t, tt.rate, 2, tt.bFrames, -0.25)

			got, err := Crossfade(a, b, tt.ms)
			if err != nil {
				t.Fatalf("Crossfade() error = %v", err)
			}
			if got.Frames() != tt.wantFrames {
				t.Errorf("Frames() = %d, want %d", got.Frames(), tt.wantFrames)
			}
			if got.DurationMs() != tt.wantDurationMs {
				t.Errorf("DurationMs() = %d, want %d", got.DurationMs(), tt.wantDurationMs)
			}
		})
	}
}

func TestCrossfade_ZeroIsConcatenation(t *testing.T) {
	t.Parallel()

	a, _ := audio.NewBuffer(8000, 1, audiotest.Ramp(1, 300))
	b, _ := audio.NewBuffer(8000, 1, audiotest.Sine(8000, 1, 200, 100))

	got, err := Crossfade(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := a.Append(b)
	if !got.Equal(want) {
		t.Error("Crossfade(a, b, 0) differs from a.Append(b)")
	}
}

func TestCrossfade_LinearRamp(t *testing.T) {
	t.Parallel()

	a := constant(t, 1000, 1, 50, 1)
	b := constant(t, 1000, 1, 50, 0)

	got, err := Crossfade(a, b, 10)
	if err != nil {
		t.Fatal(err)
	}

	for f := range 40 {
		if v := got.At(f, 0); v != 1 {
			t.Fatalf("frame %d = %v, want 1 before the fade", f, v)
		}
	}
	for k := range 10 {
		want := 1 - float64(k)/10
		if v := got.At(40+k, 0); math.Abs(float64(v)-want) > 1e-6 {
			t.Errorf("fade frame %d = %v, want %v", k, v, want)
		}
	}
	for f := 50; f < got.Frames(); f++ {
		if v := got.At(f, 0); v != 0 {
			t.Fatalf("frame %d = %v, want 0 after the fade", f, v)
		}
	}
}

func TestCrossfade_PreservesSeamLevel(t *testing.T) {
	t.Parallel()

	// identical material on both sides must come out unchanged
	a := constant(t, 48000, 2, 4800, 0.5)
	b := constant(t, 48000, 2, 4800, 0.5)

	got, err := Crossfade(a, b, 10)
	if err != nil {
		t.Fatal(err)
	}
	for f := range got.Frames() {
		if v := got.At(f, 1); math.Abs(float64(v)-0.5) > 1e-6 {
			t.Fatalf("frame %d = %v, want 0.5", f, v)
		}
	}
}

func TestCrossfade_ConformsSecondSegment(t *testing.T) {
	t.Parallel()

	a := constant(t, 48000, 2, 48000, 0.1)
	b := constant(t, 24000, 1, 24000, 0.1)

	got, err := Crossfade(a, b, 10)
	if err != nil {
		t.Fatalf("Crossfade() error = %v", err)
	}
	if got.SampleRate() != 48000 || got.Channels() != 2 {
		t.Errorf("format = %v, want 48000 Hz stereo", got)
	}
	if got.Frames() != 96000-480 {
		t.Errorf("Frames() = %d, want %d", got.Frames(), 96000-480)
	}
}

func TestCrossfade_Errors(t *testing.T) {
	t.Parallel()

	long := constant(t, 1000, 1, 100, 0)
	short := constant(t, 1000, 1, 5, 0)

	tests := []struct {
		name string
		a, b *audio.Buffer
		ms   int
		want error
	}{
		{"longer than b", long, short, 10, ErrCrossfadeTooLong},
		{"longer than a", short, long, 10, ErrCrossfadeTooLong},
		{"negative", long, long, -1, ErrInvalidCrossfade},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Crossfade(tt.a, tt.b, tt.ms); !errors.Is(err, tt.want) {
				t.Errorf("Crossfade() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMerge_MatchesFold(t *testing.T) {
	t.Parallel()

	var chunks []Processed
	for i, freq := range []float64{220, 440, 330, 550} {
		buf, _ := audio.NewBuffer(48000, 2, audiotest.Sine(48000, 2, 4800+i*100, freq))
		chunks = append(chunks, Processed{Index: i, Buffer: buf})
	}

	got, err := Merge(chunks, DefaultCrossfadeMs)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	want := chunks[0].Buffer
	for _, c := range chunks[1:] {
		want, err = Crossfade(want, c.Buffer, DefaultCrossfadeMs)
		if err != nil {
			t.Fatal(err)
		}
	}

	if !got.Equal(want) {
		t.Errorf("Merge() = %v, fold = %v", got, want)
	}

	sum := 0
	for _, c := range chunks {
		sum += c.Buffer.Frames()
	}
	if wantFrames := sum - 3*480; got.Frames() != wantFrames {
		t.Errorf("Frames() = %d, want %d", got.Frames(), wantFrames)
	}
}

func TestMerge_Single(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(48000, 1, audiotest.Ramp(1, 1000))

	got, err := Merge([]Processed{{Index: 0, Buffer: buf}}, DefaultCrossfadeMs)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(buf) {
		t.Error("Merge() of one chunk changed it")
	}
}

func TestMerge_Errors(t *testing.T) {
	t.Parallel()

	buf := constant(t, 48000, 1, 4800, 0)
	tiny := constant(t, 48000, 1, 48, 0)

	tests := []struct {
		name   string
		chunks []Processed
		want   error
	}{
		{"empty", nil, ErrNoChunks},
		{"starts at one", []Processed{{1, buf}, {2, buf}}, ErrOutOfOrder},
		{"swapped", []Processed{{0, buf}, {2, buf}, {1, buf}}, ErrOutOfOrder},
		{"duplicate", []Processed{{0, buf}, {0, buf}}, ErrOutOfOrder},
		{"last shorter than fade", []Processed{{0, buf}, {1, tiny}}, ErrCrossfadeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Merge(tt.chunks, DefaultCrossfadeMs); !errors.Is(err, tt.want) {
				t.Errorf("Merge() error = %v, want %v", err, tt.want)
			}
		})
	}
}
