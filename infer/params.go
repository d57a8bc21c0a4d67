// SPDX-License-Identifier: EPL-2.0

package infer

import (
	"fmt"
	"slices"
	"strings"
)

// TargetRate is the sample rate the super-resolution model produces.
const TargetRate = 48000

// Variant names a model checkpoint.
type Variant string

const (
	VariantBasic  Variant = "basic"
	VariantSpeech Variant = "speech"
)

// ParseVariant accepts "basic" or "speech", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantBasic, VariantSpeech:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q (want basic or speech)", ErrInvalidVariant, s)
	}
}

func (v Variant) String() string { return string(v) }

// Devices the model can be placed on. "auto" lets the worker pick.
var Devices = []string{"auto", "cpu", "cuda", "mps"}

// ValidateDevice accepts the entries of Devices and indexed CUDA devices
// such as "cuda:1".
func ValidateDevice(device string) error {
	if slices.Contains(Devices, device) || strings.HasPrefix(device, "cuda:") {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidDevice, device)
}

// Params are the sampling settings passed with every request.
type Params struct {
	Seed             int64   `json:"seed" yaml:"seed"`
	GuidanceScale    float64 `json:"guidance_scale" yaml:"guidance_scale"`
	Steps            int     `json:"ddim_steps" yaml:"ddim_steps"`
	LatentTPerSecond float64 `json:"latent_t_per_second" yaml:"latent_t_per_second"`
}

// DefaultParams returns seed 42, guidance 3.5, 50 DDIM steps and 12.8
// latent frames per second.
func DefaultParams() Params {
	return Params{
		Seed:             42,
		GuidanceScale:    3.5,
		Steps:            50,
		LatentTPerSecond: 12.8,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Steps <= 0:
		return fmt.Errorf("%w: ddim steps %d", ErrInvalidParams, p.Steps)
	case p.GuidanceScale <= 0:
		return fmt.Errorf("%w: guidance scale %g", ErrInvalidParams, p.GuidanceScale)
	case p.LatentTPerSecond <= 0:
		return fmt.Errorf("%w: latent_t_per_second %g", ErrInvalidParams, p.LatentTPerSecond)
	}
	return nil
}
