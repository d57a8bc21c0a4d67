// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/audsr/utils"
)

// lowPassAlpha is the coefficient of the one-pole filter applied before
// downsampling.
const lowPassAlpha = 0.5

// Resample converts buf to dstRate using Catmull-Rom interpolation.
// Channel layout is preserved. When downsampling, a simple one-pole
// low-pass filter runs first to limit aliasing.
func Resample(buf *Buffer, dstRate int) (*Buffer, error) {
	if err := checkFormat(dstRate, buf.channels); err != nil {
		return nil, err
	}
	if dstRate == buf.sampleRate || buf.Empty() {
		return &Buffer{sampleRate: dstRate, channels: buf.channels, data: buf.data}, nil
	}

	src := buf.data
	ratio := float64(buf.sampleRate) / float64(dstRate) // source frames per output frame
	if ratio > 1 {
		src = lowPass(buf.data, buf.channels)
	}

	channels := buf.channels
	inFrames := buf.Frames()
	outFrames := int(math.Round(float64(inFrames) / ratio))
	out := make([]float32, outFrames*channels)

	at := func(frame, ch int) float32 {
		frame = min(max(frame, 0), inFrames-1)
		return src[frame*channels+ch]
	}

	for j := range outFrames {
		pos := float64(j) * ratio
		i := int(pos)
		x := float32(pos - float64(i))
		for ch := range channels {
			out[j*channels+ch] = utils.CubicInterpolate(
				at(i-1, ch), at(i, ch), at(i+1, ch), at(i+2, ch), x)
		}
	}

	return &Buffer{sampleRate: dstRate, channels: channels, data: out}, nil
}

func lowPass(data []float32, channels int) []float32 {
	out := make([]float32, len(data))
	state := make([]float32, channels)

	// Seed with the first frame to avoid a warm-up transient
	copy(state, data)

	for i, v := range data {
		ch := i % channels
		state[ch] = lowPassAlpha*v + (1-lowPassAlpha)*state[ch]
		out[i] = state[ch]
	}
	return out
}
