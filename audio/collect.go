// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadAll tolerates
// before giving up on a source.
const maxEmptyReads = 100

// ReadAll drains src into a Buffer. It does not close src.
//
// Decoders that cannot know the stream length up front (MP3, Vorbis) are
// read in src.BufSize() sized blocks until io.EOF.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if err := checkFormat(src.SampleRate(), channels); err != nil {
		return nil, err
	}

	// Block size must hold whole frames
	block := max(src.BufSize(), 4096)
	block -= block % channels
	if block == 0 {
		block = channels
	}
	buf := make([]float32, block)

	data := make([]float32, 0, src.SampleRate()*channels)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			empty = 0
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
		}
	}

	// A truncated stream may end mid-frame
	data = data[:len(data)-len(data)%channels]

	return &Buffer{sampleRate: src.SampleRate(), channels: channels, data: data}, nil
}
