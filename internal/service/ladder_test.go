package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFor(t *testing.T) {
	cases := []struct {
		marketValue int
		want        string
	}{
		{0, "Intern"},
		{59_999, "Intern"},
		{60_000, "Intern"},
		{99_999, "Intern"},
		{100_000, "Analyst"},
		{160_000, "Senior Analyst"},
		{239_999, "Senior Analyst"},
		{240_000, "Associate"},
		{350_000, "Senior Associate"},
		{500_000, "Vice President"},
		{680_000, "Director"},
		{850_000, "Managing Director"},
		{999_999, "Managing Director"},
		{1_000_000, "Elite MD"},
		{1_500_000, "Elite MD"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TitleFor(tc.marketValue), "market value %d", tc.marketValue)
	}
}

func TestTitleForIsMonotonic(t *testing.T) {
	ladder := Tiers()
	rank := func(title string) int {
		for i, tier := range ladder {
			if tier.Title == title {
				return i
			}
		}
		t.Fatalf("unknown title %q", title)
		return -1
	}

	prev := rank(TitleFor(MinMarketValue))
	for mv := MinMarketValue; mv <= MaxMarketValue; mv += 5_000 {
		cur := rank(TitleFor(mv))
		assert.GreaterOrEqual(t, cur, prev, "market value %d", mv)
		prev = cur
	}
}

func TestThresholdFor(t *testing.T) {
	threshold, ok := ThresholdFor("Vice President")
	require.True(t, ok)
	assert.Equal(t, 500_000, threshold)

	_, ok = ThresholdFor("CEO")
	assert.False(t, ok)
}

func TestNextTier(t *testing.T) {
	t.Run("MiddleOfLadder", func(t *testing.T) {
		next := NextTier("Analyst")
		require.NotNil(t, next)
		assert.Equal(t, "Senior Analyst", next.Title)
		assert.Equal(t, 160_000, next.Threshold)
	})

	t.Run("TopOfLadder", func(t *testing.T) {
		assert.Nil(t, NextTier("Elite MD"))
	})

	t.Run("UnknownTitle", func(t *testing.T) {
		assert.Nil(t, NextTier("Partner"))
	})
}

func TestTiersReturnsCopy(t *testing.T) {
	ladder := Tiers()
	require.Len(t, ladder, 9)
	ladder[0].Threshold = -1
	assert.Equal(t, 60_000, Tiers()[0].Threshold)
}
