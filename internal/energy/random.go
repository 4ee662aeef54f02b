// Package energy turns environmental readings into carbon intensity,
// renewable potential and footprint figures. Everything here is a pure
// function of its inputs, the injected clock and the injected RandomSource.
package energy

import "math/rand"

// RandomSource yields values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRandom draws from the runtime's shared generator.
func DefaultRandom() RandomSource { return globalRand{} }

// FixedRandom always returns the same value. Useful for reproducible runs.
type FixedRandom float64

func (f FixedRandom) Float64() float64 { return float64(f) }
