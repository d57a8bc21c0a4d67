// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes integer PCM WAV files using
// github.com/go-audio/wav.
//
// The Decoder accepts 8, 16, 24 and 32-bit PCM (plain or
// WAVE_FORMAT_EXTENSIBLE) at any sample rate and channel count. Float and
// compressed encodings are rejected with ErrUnsupportedEncoding.
//
//	f, _ := os.Open("take.wav")
//	source, err := wav.Decoder{}.Decode(f)
//
// Encode writes an audio.Buffer at a chosen bit depth to an io.WriteSeeker.
// WriteFile and ReadFile are the 16-bit file helpers used for the
// intermediate chunk files and the lossless export:
//
//	err := wav.WriteFile("song_processed.wav", merged)
package wav
