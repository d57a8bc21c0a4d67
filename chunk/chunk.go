// SPDX-License-Identifier: EPL-2.0

package chunk

import (
	"fmt"

	"github.com/ik5/audsr/audio"
)

// DefaultMaxMs is the longest segment handed to the model in one call.
const DefaultMaxMs = 45000

// Chunk is a contiguous segment of the input. Index is its zero-based
// position in the original.
type Chunk struct {
	Index  int
	Buffer *audio.Buffer
}

// Split cuts buf into consecutive chunks of maxMs milliseconds. Every
// chunk except the last is exactly maxMs long; the last holds the
// remainder. Boundaries are computed from the absolute millisecond offset
// so frame rounding never accumulates. An empty buffer yields a single
// empty chunk.
func Split(buf *audio.Buffer, maxMs int) ([]Chunk, error) {
	if maxMs <= 0 {
		return nil, fmt.Errorf("%w: %d ms", ErrInvalidDuration, maxMs)
	}
	if audio.FramesFor(maxMs, buf.SampleRate()) < 1 {
		return nil, fmt.Errorf("%w: %d ms is shorter than one frame at %d Hz",
			ErrInvalidDuration, maxMs, buf.SampleRate())
	}

	frames := buf.Frames()
	if frames == 0 {
		return []Chunk{{Index: 0, Buffer: buf}}, nil
	}

	var chunks []Chunk
	for i := 0; ; i++ {
		if buf.FrameAt(i*maxMs) >= frames {
			break
		}
		chunks = append(chunks, Chunk{Index: i, Buffer: buf.SliceMs(i*maxMs, (i+1)*maxMs)})
	}

	return chunks, nil
}

// Join concatenates chunks back into one buffer. Chunks must be in index
// order and share a format.
func Join(chunks []Chunk) (*audio.Buffer, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	buffers := make([]*audio.Buffer, 0, len(chunks)-1)
	for i, c := range chunks {
		if c.Index != i {
			return nil, fmt.Errorf("%w: position %d holds chunk %d", ErrOutOfOrder, i, c.Index)
		}
		if i == 0 {
			continue
		}
		if !chunks[0].Buffer.SameFormat(c.Buffer) {
			return nil, fmt.Errorf("%w: chunk %d is %v, chunk 0 is %v",
				ErrFormatMismatch, i, c.Buffer, chunks[0].Buffer)
		}
		buffers = append(buffers, c.Buffer)
	}

	return chunks[0].Buffer.Append(buffers...)
}
