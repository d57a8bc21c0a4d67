// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/utils"
)

// DefaultBitDepth is used by WriteFile.
const DefaultBitDepth = 16

const encodeBlockFrames = 8192

// Encode writes buf to w as an integer PCM WAV of the given bit depth.
// The header sizes are patched on completion, hence the io.WriteSeeker.
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	enc := wav.NewEncoder(w, buf.SampleRate(), bitDepth, buf.Channels(), formatPCM)

	format := &goaudio.Format{NumChannels: buf.Channels(), SampleRate: buf.SampleRate()}
	block := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, 0, encodeBlockFrames*buf.Channels()),
		SourceBitDepth: bitDepth,
	}

	frames := buf.Frames()
	for start := 0; start < frames; start += encodeBlockFrames {
		part := buf.SliceFrames(start, start+encodeBlockFrames)

		block.Data = block.Data[:0]
		for f := range part.Frames() {
			for ch := range part.Channels() {
				v := utils.FloatToPCM(part.At(f, ch), bitDepth)
				if bitDepth == 8 {
					v += 128
				}
				block.Data = append(block.Data, v)
			}
		}

		if err := enc.Write(block); err != nil {
			return fmt.Errorf("writing PCM block: %w", err)
		}
	}

	// the header is only emitted on the first Write
	if frames == 0 {
		if err := enc.Write(block); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}
	return nil
}

// WriteFile encodes buf as 16-bit PCM into path, replacing any existing file.
func WriteFile(path string, buf *audio.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := Encode(f, buf, DefaultBitDepth); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the WAV file at path into memory.
func ReadFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return buf, nil
}
