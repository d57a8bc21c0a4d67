// SPDX-License-Identifier: EPL-2.0

// Package export writes merged audio to the run's output directory as a
// 16-bit WAV and a constant-bitrate MP3.
package export
