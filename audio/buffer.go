// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Buffer is an immutable, fully decoded clip of interleaved float32 samples.
// Slicing never copies: the returned buffers share the backing array, which
// is safe because no method mutates it.
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32
}

// NewBuffer copies samples into a new Buffer.
func NewBuffer(sampleRate, channels int, samples []float32) (*Buffer, error) {
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(samples), channels)
	}

	data := make([]float32, len(samples))
	copy(data, samples)

	return &Buffer{sampleRate: sampleRate, channels: channels, data: data}, nil
}

// Silence returns a buffer of frames zero-valued frames.
func Silence(sampleRate, channels, frames int) (*Buffer, error) {
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	return &Buffer{sampleRate: sampleRate, channels: channels, data: make([]float32, frames*channels)}, nil
}

func checkFormat(sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	return nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }

// Frames is the number of sample frames (samples per channel).
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

// Len is the number of interleaved samples.
func (b *Buffer) Len() int { return len(b.data) }

// Empty reports whether the buffer holds no frames.
func (b *Buffer) Empty() bool { return len(b.data) == 0 }

// Samples returns a copy of the interleaved samples.
func (b *Buffer) Samples() []float32 {
	out := make([]float32, len(b.data))
	copy(out, b.data)
	return out
}

// At returns the sample for channel ch of frame.
func (b *Buffer) At(frame, ch int) float32 {
	return b.data[frame*b.channels+ch]
}

// Duration of the clip.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(int64(b.Frames()) * int64(time.Second) / int64(b.sampleRate))
}

// DurationMs is the clip length in whole milliseconds, rounded to nearest.
func (b *Buffer) DurationMs() int {
	return int(math.Round(float64(b.Frames()) * 1000 / float64(b.sampleRate)))
}

// FrameAt converts a millisecond offset into a frame offset (floored).
// The result is not clamped to the buffer length.
func (b *Buffer) FrameAt(ms int) int {
	return FramesFor(ms, b.sampleRate)
}

// FramesFor converts a millisecond count to frames at sampleRate.
func FramesFor(ms, sampleRate int) int {
	return int(int64(ms) * int64(sampleRate) / 1000)
}

// SliceFrames returns frames [start, end). Bounds are clamped to the buffer.
func (b *Buffer) SliceFrames(start, end int) *Buffer {
	frames := b.Frames()
	start = min(max(start, 0), frames)
	end = min(max(end, start), frames)

	lo, hi := start*b.channels, end*b.channels
	return &Buffer{
		sampleRate: b.sampleRate,
		channels:   b.channels,
		data:       b.data[lo:hi:hi],
	}
}

// SliceMs returns the span [startMs, endMs) measured from the beginning.
func (b *Buffer) SliceMs(startMs, endMs int) *Buffer {
	return b.SliceFrames(b.FrameAt(startMs), b.FrameAt(endMs))
}

// SameFormat reports whether o has the same sample rate and channel count.
func (b *Buffer) SameFormat(o *Buffer) bool {
	return b.sampleRate == o.sampleRate && b.channels == o.channels
}

// Append returns b followed by others. All buffers must share b's format.
func (b *Buffer) Append(others ...*Buffer) (*Buffer, error) {
	total := len(b.data)
	for _, o := range others {
		if !b.SameFormat(o) {
			return nil, fmt.Errorf("%w: %d Hz/%d ch vs %d Hz/%d ch",
				ErrFormatMismatch, b.sampleRate, b.channels, o.sampleRate, o.channels)
		}
		total += len(o.data)
	}

	data := make([]float32, 0, total)
	data = append(data, b.data...)
	for _, o := range others {
		data = append(data, o.data...)
	}

	return &Buffer{sampleRate: b.sampleRate, channels: b.channels, data: data}, nil
}

// Equal reports whether both buffers have the same format and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if !b.SameFormat(o) || len(b.data) != len(o.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d ms", b.sampleRate, b.channels, b.DurationMs())
}

// Source streams the buffer through the Source interface.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.buf.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.buf.data) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.buf.data) {
		return n, io.EOF
	}
	return n, nil
}
