// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrPartialFrame      = errors.New("sample count is not a multiple of channels")
	ErrFormatMismatch    = errors.New("buffers differ in sample rate or channel count")
	ErrUnsupportedRemix  = errors.New("unsupported channel conversion")
	ErrNoProgress        = errors.New("source returned no samples repeatedly")
)
