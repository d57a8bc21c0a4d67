// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ik5/audsr/audio"
	ffrun "github.com/ik5/audsr/formats/ffmpeg"
	"github.com/ik5/audsr/utils"
)

// DefaultBitrate is the constant bitrate used for exported files.
const DefaultBitrate = "320k"

// Encode writes buf to w as a constant-bitrate MP3 using ffmpeg's libmp3lame.
func Encode(ctx context.Context, w io.Writer, buf *audio.Buffer, bitrate string) error {
	stream := pcmInput(buf).
		Output("pipe:", outputArgs(bitrate, ffmpeg.KwArgs{"f": "mp3"})).
		WithOutput(w)

	if err := ffrun.Run(ctx, stream); err != nil {
		return fmt.Errorf("encoding mp3: %w", err)
	}
	return nil
}

// WriteFile encodes buf into path, replacing any existing file. A partial
// file is removed on failure.
func WriteFile(ctx context.Context, path string, buf *audio.Buffer, bitrate string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := Encode(ctx, f, buf, bitrate); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func pcmInput(buf *audio.Buffer) *ffmpeg.Stream {
	return ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":  "s16le",
		"ar": buf.SampleRate(),
		"ac": buf.Channels(),
	}).WithInput(bytes.NewReader(s16le(buf)))
}

func outputArgs(bitrate string, extra ffmpeg.KwArgs) ffmpeg.KwArgs {
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	args := ffmpeg.KwArgs{
		"c:a": "libmp3lame",
		"b:a": bitrate,
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

// s16le renders the buffer as interleaved 16-bit little-endian PCM.
func s16le(buf *audio.Buffer) []byte {
	out := make([]byte, 0, buf.Len()*bytesPerSample)
	for f := range buf.Frames() {
		for ch := range buf.Channels() {
			out = binary.LittleEndian.AppendUint16(out, uint16(utils.Float32ToInt16(buf.At(f, ch))))
		}
	}
	return out
}
