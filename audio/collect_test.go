// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/audsr/internal/audiotest"
)

func TestReadAll_MockSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 10000, 440)

	b, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if b.SampleRate() != 44100 || b.Channels() != 2 {
		t.Errorf("ReadAll() format = %d Hz/%d ch", b.SampleRate(), b.Channels())
	}
	if b.Frames() != 10000 {
		t.Errorf("ReadAll() frames = %d, want 10000", b.Frames())
	}
}

func TestReadAll_RoundTripsBufferSource(t *testing.T) {
	t.Parallel()

	orig := mustBuffer(t, 16000, 3, audiotest.Ramp(3, 9001))

	got, err := ReadAll(orig.Source())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !got.Equal(orig) {
		t.Error("ReadAll(buf.Source()) differs from buf")
	}
}

func TestReadAll_EmptySource(t *testing.T) {
	t.Parallel()

	b, err := ReadAll(audiotest.NewConstantSource(8000, 1, 0, 0))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !b.Empty() {
		t.Errorf("ReadAll() of empty source has %d frames", b.Frames())
	}
}

func TestReadAll_PropagatesError(t *testing.T) {
	t.Parallel()

	src := &audiotest.FailingSource{Rate: 8000, Chans: 1, Good: 5000}

	if _, err := ReadAll(src); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("ReadAll() error = %v, want ErrInjected", err)
	}
}

type stalledSource struct{}

func (stalledSource) SampleRate() int { return 8000 }
func (stalledSource) Channels() int   { return 1 }
func (stalledSource) BufSize() int    { return 16 }
func (stalledSource) Close() error    { return nil }

func (stalledSource) ReadSamples([]float32) (int, error) {
	return 0, nil
}

func TestReadAll_NoProgress(t *testing.T) {
	t.Parallel()

	if _, err := ReadAll(stalledSource{}); !errors.Is(err, ErrNoProgress) {
		t.Errorf("ReadAll() error = %v, want ErrNoProgress", err)
	}
}
