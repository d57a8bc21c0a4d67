// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/utils"
)

// go-mp3 always produces 16-bit little-endian stereo PCM.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is the subset of gomp3.Decoder used by source.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// odd byte left over from the previous Read
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		s.hasCarry = false
		off = 1
	}

	n, err := s.dec.Read(s.buf[off:])
	n += off
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding mp3 frame: %w", err)
	}

	samples := n / bytesPerSample
	if n%bytesPerSample != 0 {
		s.carry = s.buf[n-1]
		s.hasCarry = true
	}

	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = utils.PCMToFloat(int(v), 16)
	}

	if errors.Is(err, io.EOF) {
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder decodes MPEG-1/2 Layer III streams with github.com/hajimehoshi/go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
