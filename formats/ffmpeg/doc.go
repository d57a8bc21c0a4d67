// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg wraps the ffmpeg and ffprobe binaries through
// github.com/u2takey/ffmpeg-go.
//
// DecodeFile is the fallback decoder for containers without a native Go
// decoder (FLAC, M4A, ...). Run executes any ffmpeg-go stream under a
// context and is shared with the MP3 encoder.
package ffmpeg
