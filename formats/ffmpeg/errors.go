// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import "errors"

var (
	// ErrNotFound indicates the ffmpeg/ffprobe binaries are not on PATH.
	ErrNotFound = errors.New("ffmpeg not found")

	// ErrNoAudioStream indicates the probed container has no audio stream.
	ErrNoAudioStream = errors.New("no audio stream")

	// ErrCommandFailed wraps a non-zero ffmpeg exit.
	ErrCommandFailed = errors.New("ffmpeg command failed")
)
