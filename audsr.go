// SPDX-License-Identifier: EPL-2.0

package audsr

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/chunk"
	"github.com/ik5/audsr/formats/aiff"
	"github.com/ik5/audsr/formats/ffmpeg"
	"github.com/ik5/audsr/formats/mp3"
	"github.com/ik5/audsr/formats/vorbis"
	"github.com/ik5/audsr/formats/wav"
	"github.com/ik5/audsr/merge"
)

// ErrUnsupportedFormat indicates no decoder could read the file.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// NewRegistry returns a registry holding every native decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	for _, ext := range []string{"wav", "wave"} {
		reg.Register(ext, wav.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}
	for _, ext := range []string{"aif", "aiff"} {
		reg.Register(ext, aiff.Decoder{})
	}
	return reg
}

// DecodeFile decodes path with the decoder registered for its extension.
// Files without a native decoder, or that the native decoder rejects, are
// handed to ffmpeg when it is installed.
func DecodeFile(ctx context.Context, reg *audio.Registry, path string) (*audio.Buffer, error) {
	if dec, ok := reg.ForPath(path); ok {
		buf, err := decodeNative(dec, path)
		if err == nil {
			return buf, nil
		}
		if errors.Is(err, os.ErrNotExist) || !ffmpeg.Available() {
			return nil, err
		}

		fallback, ffErr := ffmpeg.DecodeFile(ctx, path)
		if ffErr != nil {
			return nil, errors.Join(err, ffErr)
		}
		return fallback, nil
	}

	if !ffmpeg.Available() {
		return nil, fmt.Errorf("%w: %s (supported: %v, others need ffmpeg)", ErrUnsupportedFormat, path, reg.Formats())
	}
	return ffmpeg.DecodeFile(ctx, path)
}

func decodeNative(dec audio.Decoder, path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
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

// Processor turns one chunk into its super-resolved counterpart.
// infer.Adapter is the production implementation.
type Processor interface {
	Process(ctx context.Context, name string, c chunk.Chunk) (merge.Processed, error)
}

// Options control Upscale.
type Options struct {
	// ChunkMs is the longest segment processed at once.
	ChunkMs int
	// CrossfadeMs is the overlap at every seam.
	CrossfadeMs int
	// OnChunk, when set, is called after each chunk completes.
	OnChunk func(done, total int)
}

// DefaultOptions returns 45 s chunks joined with 10 ms crossfades.
func DefaultOptions() Options {
	return Options{ChunkMs: chunk.DefaultMaxMs, CrossfadeMs: merge.DefaultCrossfadeMs}
}

// Upscale splits buf, runs every chunk through p in order and merges the
// results. The first failing chunk aborts the call.
func Upscale(ctx context.Context, p Processor, name string, buf *audio.Buffer, opts Options) (*audio.Buffer, error) {
	chunks, err := chunk.Split(buf, opts.ChunkMs)
	if err != nil {
		return nil, err
	}

	processed := make([]merge.Processed, 0, len(chunks))
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := p.Process(ctx, name, c)
		if err != nil {
			return nil, err
		}
		processed = append(processed, out)

		if opts.OnChunk != nil {
			opts.OnChunk(len(processed), len(chunks))
		}
	}

	return merge.Merge(processed, opts.CrossfadeMs)
}
