// SPDX-License-Identifier: EPL-2.0

package infer

import "context"

// Model is the super-resolution collaborator. SuperResolve reads the audio
// file at input and writes a WAV at TargetRate to output. Implementations
// need not be safe for concurrent use.
type Model interface {
	SuperResolve(ctx context.Context, input, output string, p Params) error
	Close() error
}

// Builder loads a model once per run, before any file is processed.
type Builder func(ctx context.Context, v Variant, device string) (Model, error)
