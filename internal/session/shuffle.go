// Package session holds the study-session logic shared by every surface:
// randomized ordering, answer grading and the quiz and flashcard state machines.
package session

import "math/rand/v2"

// Rand is the randomness source used for shuffling
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRand draws from the process-wide generator and is safe for concurrent use
var DefaultRand Rand = globalRand{}

// Shuffle returns a uniformly permuted copy of items using Fisher-Yates.
// The input slice is left untouched.
func Shuffle[T any](items []T, rng Rand) []T {
	if rng == nil {
		rng = DefaultRand
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
