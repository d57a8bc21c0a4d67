// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files using
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes natively to float32, so samples are passed through
// without conversion. ReadSamples always returns whole frames; a dst
// shorter than one frame yields audio.ErrInvalidDstSize.
package vorbis
