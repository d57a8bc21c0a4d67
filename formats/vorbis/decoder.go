// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audsr/audio"
)

// oggReader is the subset of oggvorbis.Reader used by source.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values decoded, always whole frames.
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 * s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	whole := len(dst) - len(dst)%s.channels
	if whole == 0 {
		if len(dst) != 0 {
			return 0, audio.ErrInvalidDstSize
		}
		return 0, nil
	}

	n, err := s.dec.Read(dst[:whole])
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("decoding vorbis packet: %w", err)
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
