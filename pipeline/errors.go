// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"

	"github.com/ik5/audsr"
)

var (
	// ErrEmptyInput indicates a file decoded to zero frames.
	ErrEmptyInput = errors.New("input audio is empty")

	// ErrUnsupportedFormat indicates no decoder could read the file.
	ErrUnsupportedFormat = audsr.ErrUnsupportedFormat
)
