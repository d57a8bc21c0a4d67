// SPDX-License-Identifier: EPL-2.0

// Package audsr drives an external audio super-resolution model over
// arbitrarily long recordings.
//
// Long inputs are cut into 45 second chunks, each chunk is upsampled to
// 48 kHz by the model, and the results are joined with short crossfades:
//
//	reg := audsr.NewRegistry()
//	buf, err := audsr.DecodeFile(ctx, reg, "interview.mp3")
//	if err != nil {
//	    return err
//	}
//
//	merged, err := audsr.Upscale(ctx, adapter, "interview", buf, audsr.DefaultOptions())
//
// # Supported Formats
//
// Native decoders cover WAV (8/16/24/32-bit PCM), MP3, Ogg Vorbis and
// AIFF. Anything else (FLAC, M4A, ...) is decoded through ffmpeg when it
// is installed.
//
// # Packages
//
//   - audio: buffers, resampling, channel remixing, decoder registry
//   - chunk: splitting into bounded segments
//   - infer: the model contract, the Python worker and the chunk adapter
//   - merge: crossfaded reassembly
//   - export: WAV and MP3 output
//   - pipeline: the per-file workflow used by cmd/audsr
//   - config: YAML and flag configuration
package audsr
