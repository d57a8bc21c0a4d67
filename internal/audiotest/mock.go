// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds sample generators and sources shared by tests.
// It does not import the audio package so that package can use it from
// internal tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by FailingSource.
var ErrInjected = errors.New("audiotest: injected failure")

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return sineAt(sample, sampleRate, frequency)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// FailingSource yields Good frames of silence and then fails with ErrInjected.
type FailingSource struct {
	Rate, Chans, Good int
	read              int
}

func (f *FailingSource) SampleRate() int { return f.Rate }
func (f *FailingSource) Channels() int   { return f.Chans }
func (f *FailingSource) BufSize() int    { return 256 }
func (f *FailingSource) Close() error    { return nil }

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	if f.read >= f.Good {
		return 0, ErrInjected
	}
	frames := min(len(dst)/f.Chans, f.Good-f.read)
	clear(dst[:frames*f.Chans])
	f.read += frames
	return frames * f.Chans, nil
}

// Sine returns interleaved samples of a sine tone at 0.5 amplitude.
func Sine(sampleRate, channels, frames int, frequency float64) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		v := 0.5 * sineAt(i, sampleRate, frequency)
		for ch := range channels {
			out[i*channels+ch] = v
		}
	}
	return out
}

// Ramp returns interleaved samples where every value is distinct, which
// makes misplaced or dropped samples easy to spot.
func Ramp(channels, frames int) []float32 {
	out := make([]float32, frames*channels)
	n := float32(len(out) + 1)
	for i := range out {
		out[i] = float32(i+1)/n*2 - 1
	}
	return out
}

// Constant returns interleaved samples all set to value.
func Constant(channels, frames int, value float32) []float32 {
	out := make([]float32, frames*channels)
	for i := range out {
		out[i] = value
	}
	return out
}

func sineAt(sample, sampleRate int, frequency float64) float32 {
	t := float64(sample) / float64(sampleRate)
	return float32(math.Sin(2 * math.Pi * frequency * t))
}
