// SPDX-License-Identifier: EPL-2.0

package audsr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/chunk"
	"github.com/ik5/audsr/formats/ffmpeg"
	"github.com/ik5/audsr/formats/wav"
	"github.com/ik5/audsr/internal/audiotest"
	"github.com/ik5/audsr/merge"
)

// doubler resamples every chunk to twice its rate and records durations.
type doubler struct {
	seen   []int
	failAt int
}

func (d *doubler) Process(_ context.Context, _ string, c chunk.Chunk) (merge.Processed, error) {
	d.seen = append(d.seen, c.Buffer.DurationMs())
	if d.failAt > 0 && len(d.seen) == d.failAt {
		return merge.Processed{}, errors.New("model exploded")
	}

	up, err := audio.Resample(c.Buffer, c.Buffer.SampleRate()*2)
	if err != nil {
		return merge.Processed{}, err
	}
	return merge.Processed{Index: c.Index, Buffer: up}, nil
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, ext := range []string{"wav", "WAV", "mp3", "ogg", "aiff", "aif"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("no decoder for %q", ext)
		}
	}
	if _, ok := reg.Get("flac"); ok {
		t.Error("unexpected native flac decoder")
	}
}

func TestDecodeFile_WAV(t *testing.T) {
	t.Parallel()

	want, _ := audio.NewBuffer(16000, 1, audiotest.Sine(16000, 1, 16000, 440))
	path := filepath.Join(t.TempDir(), "take.wav")
	if err := wav.WriteFile(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeFile(context.Background(), NewRegistry(), path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if !got.SameFormat(want) || got.Frames() != want.Frames() {
		t.Errorf("DecodeFile() = %v, want %v", got, want)
	}
}

func TestDecodeFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := DecodeFile(context.Background(), NewRegistry(), filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("DecodeFile() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestDecodeFile_Unsupported(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.xyz")
	if err := os.WriteFile(path, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := DecodeFile(context.Background(), NewRegistry(), path)
	if err == nil {
		t.Fatal("DecodeFile() error = nil")
	}
	if !ffmpeg.Available() && !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeFile() error = %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestUpscale(t *testing.T) {
	t.Parallel()

	// 100 s at 1 kHz keeps the test fast
	buf, _ := audio.NewBuffer(1000, 1, audiotest.Sine(1000, 1, 100000, 50))
	p := &doubler{}

	var progress []int
	opts := DefaultOptions()
	opts.OnChunk = func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		progress = append(progress, done)
	}

	got, err := Upscale(context.Background(), p, "song", buf, opts)
	if err != nil {
		t.Fatalf("Upscale() error = %v", err)
	}

	wantSeen := []int{45000, 45000, 10000}
	if len(p.seen) != 3 || p.seen[0] != wantSeen[0] || p.seen[1] != wantSeen[1] || p.seen[2] != wantSeen[2] {
		t.Errorf("chunk durations = %v, want %v", p.seen, wantSeen)
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v", progress)
	}

	if got.SampleRate() != 2000 {
		t.Errorf("SampleRate() = %d, want 2000", got.SampleRate())
	}
	// two seams of 10 ms each
	if got.DurationMs() != 100000-20 {
		t.Errorf("DurationMs() = %d, want %d", got.DurationMs(), 100000-20)
	}
}

func TestUpscale_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	buf, _ := audio.Silence(1000, 1, 100000)
	p := &doubler{failAt: 2}

	if _, err := Upscale(context.Background(), p, "song", buf, DefaultOptions()); err == nil {
		t.Fatal("Upscale() error = nil")
	}
	if len(p.seen) != 2 {
		t.Errorf("processed %d chunks, want to stop after 2", len(p.seen))
	}
}

func TestUpscale_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf, _ := audio.Silence(1000, 1, 1000)
	p := &doubler{}

	if _, err := Upscale(ctx, p, "song", buf, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("Upscale() error = %v, want %v", err, context.Canceled)
	}
	if len(p.seen) != 0 {
		t.Errorf("processed %d chunks after cancellation", len(p.seen))
	}
}
