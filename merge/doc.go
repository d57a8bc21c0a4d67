// SPDX-License-Identifier: EPL-2.0

// Package merge reassembles processed chunks into one clip.
//
// Each seam is smoothed with a short linear crossfade:
//
//	merged, err := merge.Merge(processed, merge.DefaultCrossfadeMs)
//
// With n chunks and an overlap of x frames, the merged clip is
// (n-1)*x frames shorter than the sum of its parts.
package merge
