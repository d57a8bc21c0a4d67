// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"

	"github.com/ik5/audsr/infer"
)

var (
	// ErrNoInput indicates neither an input file nor an input list was given.
	ErrNoInput = errors.New("no input: set an input audio file or an input file list")

	// ErrInvalidVariant is infer.ErrInvalidVariant, re-exported for callers
	// that only import config.
	ErrInvalidVariant = infer.ErrInvalidVariant

	// ErrInvalidValue indicates an out-of-range setting.
	ErrInvalidValue = errors.New("invalid configuration value")
)
