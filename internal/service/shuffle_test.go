package service

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySeed(t *testing.T) {
	day := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "user-42:2025-03-14", DailySeed("user-42", day))

	// time of day never changes the seed
	morning := time.Date(2025, 3, 14, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, DailySeed("user-42", day), DailySeed("user-42", morning))
}

func TestShuffledIndexesDeterminism(t *testing.T) {
	first := ShuffledIndexes("user-42:2025-03-14", 50)
	second := ShuffledIndexes("user-42:2025-03-14", 50)
	assert.Equal(t, first, second)
}

func TestShuffledIndexesIsPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 100} {
		perm := ShuffledIndexes("seed", n)
		require.Len(t, perm, n)

		sorted := make([]int, len(perm))
		copy(sorted, perm)
		sort.Ints(sorted)
		for i, v := range sorted {
			assert.Equal(t, i, v, "n=%d", n)
		}
	}
}

func TestShuffledIndexesVariesWithSeed(t *testing.T) {
	t.Run("DifferentDay", func(t *testing.T) {
		a := ShuffledIndexes("user-42:2025-03-14", 30)
		b := ShuffledIndexes("user-42:2025-03-15", 30)
		assert.NotEqual(t, a, b)
	})

	t.Run("DifferentUser", func(t *testing.T) {
		a := ShuffledIndexes("user-42:2025-03-14", 30)
		b := ShuffledIndexes("user-43:2025-03-14", 30)
		assert.NotEqual(t, a, b)
	})
}
