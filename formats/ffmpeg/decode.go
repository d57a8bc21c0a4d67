// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ik5/audsr/audio"
)

// DecodeFile decodes the first audio stream of any container ffmpeg can
// read, keeping its native sample rate and channel count.
func DecodeFile(ctx context.Context, path string) (*audio.Buffer, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	var pcm bytes.Buffer
	stream := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"map":    "0:a:0",
			"f":      "f32le",
			"acodec": "pcm_f32le",
			"ar":     info.SampleRate,
			"ac":     info.Channels,
		}).
		WithOutput(&pcm)

	if err := Run(ctx, stream); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	buf, err := audio.NewBuffer(info.SampleRate, info.Channels, float32le(pcm.Bytes(), info.Channels))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return buf, nil
}

// float32le converts raw little-endian float32 PCM, dropping any trailing
// partial sample or frame.
func float32le(raw []byte, channels int) []float32 {
	n := len(raw) / 4
	n -= n % channels

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out
}
