// SPDX-License-Identifier: EPL-2.0

package infer

import "errors"

var (
	// ErrInvalidParams indicates sampling parameters the model cannot use.
	ErrInvalidParams = errors.New("invalid inference parameters")

	// ErrInvalidVariant indicates an unknown model checkpoint name.
	ErrInvalidVariant = errors.New("invalid model variant")

	// ErrInvalidDevice indicates an unknown compute device.
	ErrInvalidDevice = errors.New("invalid device")

	// ErrWorkerFailed indicates the model worker reported an error or exited.
	ErrWorkerFailed = errors.New("model worker failed")

	// ErrUnexpectedRate indicates model output at a rate other than the target.
	ErrUnexpectedRate = errors.New("unexpected output sample rate")
)
