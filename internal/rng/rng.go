// Package rng provides per-hand random sources seeded from the
// operating system's CSPRNG. Each hand owns its own generator, so no
// global state is shared between sessions and a client cannot predict
// undealt cards from observed deals.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// NewHandSource returns a math/rand generator seeded from crypto/rand.
// The generator itself is not cryptographic, but its seed is not
// predictable by any table participant.
func NewHandSource() *rand.Rand {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// The OS entropy source failing is not recoverable at this layer.
		panic(err)
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(buf[:]))))
}

// NewSeededSource returns a deterministic generator for tests and
// simulations.
func NewSeededSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTableSource returns a per-hand source factory for one table of a
// seeded simulation. The table offset sits in the high bits so hand
// counters never collide across tables.
func NewTableSource(seed int64, table int) func() *rand.Rand {
	base := seed + int64(table)<<32
	return func() *rand.Rand {
		base++
		return NewSeededSource(base)
	}
}
