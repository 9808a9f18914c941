package service

import (
	"fmt"
	"time"

	"ranked_arena_backend/internal/util"
)

// The daily shuffle keeps question ordering stable for a given user and
// calendar date without any server-side session state: a string hash seeds
// a small fast PRNG, and the seed changes only when the date does.

// DailySeed composes the shuffle seed from an entity id and a calendar
// date. Identical inputs always produce the identical permutation across
// processes.
func DailySeed(entityID string, day time.Time) string {
	return fmt.Sprintf("%s:%s", entityID, day.Format(util.DateFormat))
}

// hashSeed is a djb2-style string hash.
func hashSeed(seed string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(seed); i++ {
		h = h*33 + uint32(seed[i])
	}
	return h
}

// mulberry32 returns a fast deterministic PRNG yielding floats in [0,1).
func mulberry32(state uint32) func() float64 {
	return func() float64 {
		state += 0x6D2B79F5
		z := state
		z = (z ^ (z >> 15)) * (z | 1)
		z ^= z + (z^(z>>7))*(z|61)
		z ^= z >> 14
		return float64(z) / 4294967296.0
	}
}

// ShuffledIndexes returns a deterministic permutation of [0,n) for the
// given seed. The output is always a true permutation, never a subset.
func ShuffledIndexes(seed string, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	next := mulberry32(hashSeed(seed))
	for i := n - 1; i > 0; i-- {
		j := int(next() * float64(i+1))
		if j > i {
			j = i
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
