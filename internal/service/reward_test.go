package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseMoney(t *testing.T) {
	assert.Equal(t, 500, BaseMoney(1))
	assert.Equal(t, 2500, BaseMoney(5))
}

func TestMoneyAwarded(t *testing.T) {
	t.Run("FastAnswerOnStreak", func(t *testing.T) {
		// difficulty 3 base 1500, 15 of 20 seconds saved -> +15%,
		// streak of 2 -> +10%: 1500 * 1.15 * 1.10 = 1897.5
		got := MoneyAwarded(1.0, RewardContext{
			Difficulty:      3,
			TimeTakenSec:    5,
			ExpectedTimeSec: 20,
			StreakBefore:    2,
		})
		assert.Equal(t, 1898, got)
	})

	t.Run("NoBonusesAtExpectedPace", func(t *testing.T) {
		got := MoneyAwarded(1.0, RewardContext{
			Difficulty:      2,
			TimeTakenSec:    30,
			ExpectedTimeSec: 30,
			StreakBefore:    0,
		})
		assert.Equal(t, 1000, got)
	})

	t.Run("PartialScoreScalesLinearly", func(t *testing.T) {
		full := MoneyAwarded(1.0, RewardContext{Difficulty: 4, TimeTakenSec: 40, ExpectedTimeSec: 30})
		half := MoneyAwarded(0.5, RewardContext{Difficulty: 4, TimeTakenSec: 40, ExpectedTimeSec: 30})
		assert.Equal(t, full/2, half)
	})

	t.Run("OvertimeEarnsNoSpeedBonus", func(t *testing.T) {
		got := MoneyAwarded(1.0, RewardContext{Difficulty: 1, TimeTakenSec: 45, ExpectedTimeSec: 30})
		assert.Equal(t, 500, got)
	})

	t.Run("ZeroScorePaysNothing", func(t *testing.T) {
		assert.Equal(t, 0, MoneyAwarded(0, RewardContext{Difficulty: 5, StreakBefore: 10}))
	})

	t.Run("BonusesAreCapped", func(t *testing.T) {
		// instant answer on a huge streak: 1.20 * 1.25 is the ceiling
		got := MoneyAwarded(1.0, RewardContext{
			Difficulty:      2,
			TimeTakenSec:    0,
			ExpectedTimeSec: 60,
			StreakBefore:    50,
		})
		assert.Equal(t, 1500, got)
	})
}

func TestMoneyPenalty(t *testing.T) {
	t.Run("HardMissOnLongStreak", func(t *testing.T) {
		// 0.12 + 4*0.06 + min(0.18, 6*0.03) = 0.54 on a 2000 base
		got := MoneyPenalty(0, RewardContext{Difficulty: 4, StreakBefore: 6, Title: "Analyst"})
		assert.Equal(t, 1080, got)
	})

	t.Run("InternRateCapped", func(t *testing.T) {
		got := MoneyPenalty(0, RewardContext{Difficulty: 4, StreakBefore: 6, Title: TitleIntern})
		assert.Equal(t, 500, got)
	})

	t.Run("RateCeiling", func(t *testing.T) {
		// 0.12 + 0.30 + 0.18 = 0.60 clamps to 0.55 on a 2500 base
		got := MoneyPenalty(0, RewardContext{Difficulty: 5, StreakBefore: 10, Title: "Director"})
		assert.Equal(t, 1375, got)
	})

	t.Run("PositiveScoreNeverPenalized", func(t *testing.T) {
		assert.Equal(t, 0, MoneyPenalty(0.25, RewardContext{Difficulty: 5, StreakBefore: 8}))
	})

	t.Run("GrowsWithDifficulty", func(t *testing.T) {
		prev := 0
		for d := 1; d <= 5; d++ {
			p := MoneyPenalty(0, RewardContext{Difficulty: d, Title: "Associate"})
			assert.Greater(t, p, prev, "difficulty %d", d)
			prev = p
		}
	})
}
