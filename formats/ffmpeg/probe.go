// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// StreamInfo describes the first audio stream of a file.
type StreamInfo struct {
	Codec      string
	SampleRate int
	Channels   int
	// Duration in seconds, zero when the container does not report one.
	Duration float64
}

type probeData struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Duration   string `json:"duration"`
}

type probeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// Probe runs ffprobe on path and returns its first audio stream.
func Probe(ctx context.Context, path string) (StreamInfo, error) {
	if err := ctx.Err(); err != nil {
		return StreamInfo{}, err
	}

	out, err := ffmpeg.Probe(path, ffmpeg.KwArgs{"select_streams": "a"})
	if err != nil {
		return StreamInfo{}, fmt.Errorf("probing %s: %w", path, err)
	}

	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (StreamInfo, error) {
	var probe probeData
	if err := json.Unmarshal(data, &probe); err != nil {
		return StreamInfo{}, fmt.Errorf("parsing probe output: %w", err)
	}

	for _, s := range probe.Streams {
		if s.CodecType != "audio" {
			continue
		}

		rate, err := strconv.Atoi(s.SampleRate)
		if err != nil || rate <= 0 || s.Channels <= 0 {
			return StreamInfo{}, fmt.Errorf("%w: bad stream format %q/%d", ErrNoAudioStream, s.SampleRate, s.Channels)
		}

		duration := s.Duration
		if duration == "" {
			duration = probe.Format.Duration
		}
		secs, _ := strconv.ParseFloat(duration, 64)

		return StreamInfo{
			Codec:      s.CodecName,
			SampleRate: rate,
			Channels:   s.Channels,
			Duration:   secs,
		}, nil
	}

	return StreamInfo{}, ErrNoAudioStream
}
