// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 with github.com/hajimehoshi/go-mp3 and encodes
// it through ffmpeg's libmp3lame.
//
// The Decoder always yields 16-bit stereo, which is what go-mp3 produces
// for mono and stereo streams alike:
//
//	f, _ := os.Open("take.mp3")
//	source, err := mp3.Decoder{}.Decode(f)
//
// Encoding needs the ffmpeg binary on PATH:
//
//	err := mp3.WriteFile(ctx, "song_processed.mp3", merged, mp3.DefaultBitrate)
package mp3
