// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Remix converts buf to the given channel count. Downmixing to mono averages
// all channels; upmixing from mono copies the single channel to every output
// channel. Other conversions return ErrUnsupportedRemix.
func Remix(buf *Buffer, channels int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if channels == buf.channels {
		return buf, nil
	}

	frames := buf.Frames()
	switch {
	case channels == 1:
		return &Buffer{sampleRate: buf.sampleRate, channels: 1, data: downmix(buf.data, buf.channels, frames)}, nil
	case buf.channels == 1:
		out := make([]float32, frames*channels)
		for f, v := range buf.data {
			for c := range channels {
				out[f*channels+c] = v
			}
		}
		return &Buffer{sampleRate: buf.sampleRate, channels: channels, data: out}, nil
	default:
		return nil, fmt.Errorf("%w: %d -> %d channels", ErrUnsupportedRemix, buf.channels, channels)
	}
}

func downmix(data []float32, channels, frames int) []float32 {
	out := make([]float32, frames)
	inv := float32(1) / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			out[f] = (data[idx] + data[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float32
			base := f * channels
			for c := range channels {
				sum += data[base+c]
			}
			out[f] = sum * inv
		}
	}
	return out
}

// Conform returns buf converted to sampleRate and channels, remixing first so
// that resampling runs on the smaller layout when downmixing.
func Conform(buf *Buffer, sampleRate, channels int) (*Buffer, error) {
	if buf.sampleRate == sampleRate && buf.channels == channels {
		return buf, nil
	}

	out, err := Remix(buf, channels)
	if err != nil {
		return nil, err
	}
	return Resample(out, sampleRate)
}
