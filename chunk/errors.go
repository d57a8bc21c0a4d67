// SPDX-License-Identifier: EPL-2.0

package chunk

import "errors"

var (
	// ErrInvalidDuration indicates a non-positive chunk length, or one
	// shorter than a single frame at the buffer's rate.
	ErrInvalidDuration = errors.New("invalid chunk duration")

	// ErrOutOfOrder indicates a chunk whose Index does not match its position.
	ErrOutOfOrder = errors.New("chunk out of order")

	// ErrFormatMismatch indicates chunks of different rate or channel count.
	ErrFormatMismatch = errors.New("chunk format mismatch")

	// ErrNoChunks indicates Join was given nothing to join.
	ErrNoChunks = errors.New("no chunks")
)
