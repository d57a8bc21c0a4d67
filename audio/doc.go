// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory audio primitives used by the
// super-resolution driver.
//
// # Source Interface
//
// Decoders stream samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadAll drains a Source into a Buffer.
//
// # Buffers
//
// Buffer is an immutable decoded clip. Slicing (SliceFrames, SliceMs)
// returns new buffers that share storage with the original, and Append
// always allocates, so a Buffer never changes once created:
//
//	buf, _ := audio.ReadAll(src)
//	head := buf.SliceMs(0, 45000)
//	rest := buf.SliceMs(45000, buf.DurationMs())
//
// # Sample Rate and Channel Conversion
//
// Resample changes the sample rate with Catmull-Rom interpolation.
// Remix converts between mono and multi-channel layouts. Conform does both:
//
//	out, err := audio.Conform(buf, 48000, 2)
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.ForPath("input.WAV")
//
// # Sample Format
//
// Samples are interleaved float32 values in [-1.0, 1.0].
package audio
