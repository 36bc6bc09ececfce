package sprintmap

import (
	"math/rand/v2"
)

// Source supplies uniformly distributed 32-bit integers for key generation.
//
// *gofakeit.Faker and *rand.Rand from math/rand/v2 both satisfy it.
type Source interface {
	Uint32() uint32
}

// newDefaultSource returns a PCG generator seeded from the runtime's entropy.
func newDefaultSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
