// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"fmt"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/utils"
)

// DefaultCrossfadeMs is the overlap applied at every chunk seam.
const DefaultCrossfadeMs = 10

// Processed is the model output for the chunk at Index.
type Processed struct {
	Index  int
	Buffer *audio.Buffer
}

// Crossfade appends b to a, overlapping the last ms milliseconds of a with
// the first ms milliseconds of b under linear gain ramps. b is first
// converted to a's sample rate and channel count. The result holds
// a.Frames()+b.Frames()-overlap frames, where overlap is ms at a's rate.
// A zero ms is plain concatenation.
func Crossfade(a, b *audio.Buffer, ms int) (*audio.Buffer, error) {
	acc := newAccumulator(a, a.Len()+b.Len())
	if err := acc.add(b, ms); err != nil {
		return nil, err
	}
	return acc.buffer()
}

// Merge joins processed chunks in order, crossfading every seam exactly as
// a left fold of Crossfade would. The result takes the format of the first
// chunk.
func Merge(chunks []Processed, crossfadeMs int) (*audio.Buffer, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	total := 0
	for i, c := range chunks {
		if c.Index != i {
			return nil, fmt.Errorf("%w: position %d holds chunk %d", ErrOutOfOrder, i, c.Index)
		}
		total += c.Buffer.Len()
	}

	acc := newAccumulator(chunks[0].Buffer, total)
	for _, c := range chunks[1:] {
		if err := acc.add(c.Buffer, crossfadeMs); err != nil {
			return nil, fmt.Errorf("merging chunk %d: %w", c.Index, err)
		}
	}

	return acc.buffer()
}

// accumulator grows a mutable copy of the merged samples so a long fold
// stays linear in the output size.
type accumulator struct {
	sampleRate int
	channels   int
	data       []float32
}

func newAccumulator(first *audio.Buffer, capacity int) *accumulator {
	data := make([]float32, 0, max(capacity, first.Len()))
	return &accumulator{
		sampleRate: first.SampleRate(),
		channels:   first.Channels(),
		data:       append(data, first.Samples()...),
	}
}

func (acc *accumulator) frames() int { return len(acc.data) / acc.channels }

func (acc *accumulator) add(b *audio.Buffer, ms int) error {
	if ms < 0 {
		return fmt.Errorf("%w: %d ms", ErrInvalidCrossfade, ms)
	}

	b, err := audio.Conform(b, acc.sampleRate, acc.channels)
	if err != nil {
		return fmt.Errorf("conforming segment: %w", err)
	}

	overlap := audio.FramesFor(ms, acc.sampleRate)
	if overlap > acc.frames() || overlap > b.Frames() {
		return fmt.Errorf("%w: %d ms over %d and %d frame segments",
			ErrCrossfadeTooLong, ms, acc.frames(), b.Frames())
	}

	start := acc.frames() - overlap
	for f := range overlap {
		gain := float32(f) / float32(overlap)
		for ch := range acc.channels {
			i := (start+f)*acc.channels + ch
			acc.data[i] = utils.Lerp(acc.data[i], b.At(f, ch), gain)
		}
	}

	for f := overlap; f < b.Frames(); f++ {
		for ch := range acc.channels {
			acc.data = append(acc.data, b.At(f, ch))
		}
	}
	return nil
}

func (acc *accumulator) buffer() (*audio.Buffer, error) {
	return audio.NewBuffer(acc.sampleRate, acc.channels, acc.data)
}
