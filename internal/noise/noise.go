// Package noise provides the deterministic coherent noise used to sample the
// terrain density field. Every Sampler returns values in [-1, 1] and is safe
// for concurrent use.
package noise

import (
	"errors"
	"fmt"
)

// ErrUnknownNoise is returned by New for an unsupported backend name.
var ErrUnknownNoise = errors.New("unknown noise kind")

// Backend names accepted by New.
const (
	KindPerlin  = "perlin"
	KindSimplex = "simplex"
	KindValue   = "value"
)

// Sampler is a seeded coherent noise function.
type Sampler interface {
	Sample2D(seed int64, x, z float64) float64
	Sample3D(seed int64, x, y, z float64) float64
}

// New returns the sampler registered under kind.
func New(kind string) (Sampler, error) {
	switch kind {
	case KindPerlin:
		return NewPerlin(), nil
	case KindSimplex:
		return NewSimplex(), nil
	case KindValue, "":
		return NewValue(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, kind)
}

// Valid reports whether kind names a known backend.
func Valid(kind string) bool {
	switch kind {
	case KindPerlin, KindSimplex, KindValue:
		return true
	}
	return false
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
