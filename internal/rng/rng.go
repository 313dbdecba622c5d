// Package rng provides the random sources used to shuffle decks
package rng

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Crypto draws from crypto/rand, a live table shuffles with it
type Crypto struct{}

// Intn returns a random number from 0 <= x < n, it panics if n <= 0
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: invalid bound %d", n))
	}

	x, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(x.Int64())
}

// NewSeeded returns a deterministic Generator
// This should only be used by tests
func NewSeeded(seed int64) Generator {
	return mrand.New(mrand.NewSource(seed)) // nolint:gosec
}
