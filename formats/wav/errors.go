// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input has no RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding indicates a non-PCM WAV (float, ADPCM, ...).
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")

	// ErrUnsupportedBitDepth indicates a PCM bit depth other than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrUnsupportedWavLayout indicates a header without usable format data.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
)
