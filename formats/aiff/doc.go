// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files using
// github.com/go-audio/aiff. Sample sizes of 8, 16, 24 and 32 bits are
// accepted.
package aiff
