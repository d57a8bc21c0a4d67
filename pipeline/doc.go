// SPDX-License-Identifier: EPL-2.0

// Package pipeline runs the per-file workflow: decode, split, super-resolve
// every chunk, merge and export. Files are handled one at a time with a
// single model instance.
package pipeline
