// SPDX-License-Identifier: EPL-2.0

// Package chunk splits decoded audio into bounded-length segments and joins
// them back.
//
//	chunks, err := chunk.Split(buf, chunk.DefaultMaxMs)
//	// 100 s of input -> 45 s, 45 s, 10 s
//
// Split never copies samples: each chunk shares storage with the input.
package chunk
