// SPDX-License-Identifier: EPL-2.0

package merge

import "errors"

var (
	// ErrNoChunks indicates Merge was given an empty sequence.
	ErrNoChunks = errors.New("no processed chunks")

	// ErrOutOfOrder indicates a chunk whose Index does not match its position.
	ErrOutOfOrder = errors.New("processed chunk out of order")

	// ErrCrossfadeTooLong indicates a crossfade longer than one of the segments.
	ErrCrossfadeTooLong = errors.New("crossfade longer than segment")

	// ErrInvalidCrossfade indicates a negative crossfade length.
	ErrInvalidCrossfade = errors.New("invalid crossfade length")
)
