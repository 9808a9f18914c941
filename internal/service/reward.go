package service

import "math"

const (
	baseMoneyPerDifficulty = 500

	maxSpeedBonus     = 0.20
	maxStreakBonus    = 0.25
	streakBonusPerHit = 0.05

	penaltyBase           = 0.12
	penaltyPerDifficulty  = 0.06
	penaltyPerStreak      = 0.03
	maxStreakPenaltyShare = 0.18
	minPenaltyRate        = 0.15
	maxPenaltyRate        = 0.55
	internPenaltyCap      = 0.25
)

// RewardContext carries the per-answer inputs that scale the money awarded
// or penalized for a single question attempt.
type RewardContext struct {
	Difficulty      int
	TimeTakenSec    int
	ExpectedTimeSec int
	StreakBefore    int
	Title           string
}

func BaseMoney(difficulty int) int {
	return baseMoneyPerDifficulty * difficulty
}

// MoneyAwarded converts a positive score into money. Speed and streak
// bonuses are multiplicative on the same base, each hard-capped, so a fast
// streaking answer approaches but never exceeds ~1.5x base money.
func MoneyAwarded(score float64, ctx RewardContext) int {
	if score <= 0 {
		return 0
	}
	base := float64(BaseMoney(ctx.Difficulty))
	amount := base * score * (1 + speedBonus(ctx.TimeTakenSec, ctx.ExpectedTimeSec)) * (1 + streakBonus(ctx.StreakBefore))
	return int(math.Round(amount))
}

// MoneyPenalty prices a wrong answer. The rate grows with difficulty and
// with the streak being broken, bounded to [0.15, 0.55]; players still
// titled Intern are capped at 0.25 to soften early churn.
func MoneyPenalty(score float64, ctx RewardContext) int {
	if score > 0 {
		return 0
	}
	rate := penaltyBase + penaltyPerDifficulty*float64(ctx.Difficulty) + math.Min(maxStreakPenaltyShare, float64(ctx.StreakBefore)*penaltyPerStreak)
	if rate < minPenaltyRate {
		rate = minPenaltyRate
	}
	if rate > maxPenaltyRate {
		rate = maxPenaltyRate
	}
	if ctx.Title == TitleIntern && rate > internPenaltyCap {
		rate = internPenaltyCap
	}
	return int(math.Round(float64(BaseMoney(ctx.Difficulty)) * rate))
}

func speedBonus(timeTakenSec, expectedTimeSec int) float64 {
	if expectedTimeSec <= 0 || timeTakenSec > expectedTimeSec {
		return 0
	}
	saved := float64(expectedTimeSec-timeTakenSec) / float64(expectedTimeSec)
	return math.Min(maxSpeedBonus, saved*maxSpeedBonus)
}

func streakBonus(streakBefore int) float64 {
	return math.Min(maxStreakBonus, float64(streakBefore)*streakBonusPerHit)
}
