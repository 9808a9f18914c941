package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ranked_arena_backend/internal/model"
)

func newActiveRun() *model.Run {
	return &model.Run{
		LivesTotal:        3,
		LivesRemaining:    3,
		CurrentDifficulty: 1,
		Status:            model.RunActive,
	}
}

func TestApplyAnswerCorrect(t *testing.T) {
	t.Run("SingleHitExtendsStreakOnly", func(t *testing.T) {
		run := newActiveRun()
		applyAnswer(run, 1.0, 500, 0)

		assert.Equal(t, 1, run.Streak)
		assert.Equal(t, 1, run.CurrentDifficulty)
		assert.Equal(t, 500, run.TotalMoney)
		assert.Equal(t, 1, run.QuestionsAnswered)
		assert.Equal(t, 1, run.QuestionsCorrect)
		assert.Equal(t, 3, run.LivesRemaining)
		assert.Equal(t, model.RunActive, run.Status)
	})

	t.Run("TwoHitsEscalateDifficulty", func(t *testing.T) {
		run := newActiveRun()
		applyAnswer(run, 1.0, 500, 0)
		applyAnswer(run, 1.0, 500, 0)

		assert.Equal(t, 2, run.CurrentDifficulty)
		assert.Equal(t, 0, run.Streak, "escalation resets the streak")
	})

	t.Run("DifficultyCappedAtMax", func(t *testing.T) {
		run := newActiveRun()
		run.CurrentDifficulty = model.MaxDifficulty
		applyAnswer(run, 1.0, 500, 0)
		applyAnswer(run, 1.0, 500, 0)

		assert.Equal(t, model.MaxDifficulty, run.CurrentDifficulty)
		assert.Equal(t, 0, run.Streak)
	})

	t.Run("PartialScoreCountsAsCorrect", func(t *testing.T) {
		run := newActiveRun()
		applyAnswer(run, 0.5, 250, 0)

		assert.Equal(t, 1, run.QuestionsCorrect)
		assert.Equal(t, 3, run.LivesRemaining)
	})
}

func TestApplyAnswerMiss(t *testing.T) {
	t.Run("CostsLifeStreakAndDifficulty", func(t *testing.T) {
		run := newActiveRun()
		run.CurrentDifficulty = 3
		run.Streak = 1
		run.TotalMoney = 1000
		applyAnswer(run, 0, 0, 400)

		assert.Equal(t, 2, run.LivesRemaining)
		assert.Equal(t, 0, run.Streak)
		assert.Equal(t, 2, run.CurrentDifficulty)
		assert.Equal(t, 600, run.TotalMoney)
		assert.Equal(t, 1, run.QuestionsAnswered)
		assert.Equal(t, 0, run.QuestionsCorrect)
	})

	t.Run("DifficultyFlooredAtMin", func(t *testing.T) {
		run := newActiveRun()
		applyAnswer(run, 0, 0, 100)
		assert.Equal(t, model.MinDifficulty, run.CurrentDifficulty)
	})

	t.Run("MoneyNeverGoesNegative", func(t *testing.T) {
		run := newActiveRun()
		run.TotalMoney = 200
		applyAnswer(run, 0, 0, 500)
		assert.Equal(t, 0, run.TotalMoney)
	})

	t.Run("LastLifeCompletesRun", func(t *testing.T) {
		run := newActiveRun()
		run.LivesRemaining = 1
		applyAnswer(run, 0, 0, 100)

		assert.Equal(t, 0, run.LivesRemaining)
		assert.Equal(t, model.RunCompleted, run.Status)
	})
}

func TestApplyAnswerAggregates(t *testing.T) {
	t.Run("HighestDifficultyTracksUsedValue", func(t *testing.T) {
		run := newActiveRun()
		run.CurrentDifficulty = 4
		applyAnswer(run, 0, 0, 100)

		// the miss dropped difficulty to 3 but 4 was the level played
		assert.Equal(t, 4, run.HighestDifficulty)
	})

	t.Run("AvgDifficultyIsRunningMean", func(t *testing.T) {
		run := newActiveRun()
		run.CurrentDifficulty = 1
		applyAnswer(run, 1.0, 500, 0) // played at 1
		run.CurrentDifficulty = 3
		applyAnswer(run, 1.0, 500, 0) // played at 3

		assert.InDelta(t, 2.0, run.AvgDifficulty, 1e-9)
	})
}
