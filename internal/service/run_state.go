package service

import (
	"ranked_arena_backend/internal/model"
)

// applyAnswer advances a run by one scored answer. The caller must hold the
// single-writer position for the run (the optimistic version check on the
// subsequent save enforces it).
//
// A miss costs a life, resets the streak and steps difficulty down; a hit
// extends the streak, and every second consecutive hit steps difficulty up
// and resets the streak so escalation cannot run away.
func applyAnswer(run *model.Run, score float64, moneyAwarded, moneyPenalty int) {
	difficultyUsed := run.CurrentDifficulty

	if score == 0 {
		if run.LivesRemaining > 0 {
			run.LivesRemaining--
		}
		run.Streak = 0
		if run.CurrentDifficulty > model.MinDifficulty {
			run.CurrentDifficulty--
		}
		run.TotalMoney -= moneyPenalty
		if run.TotalMoney < 0 {
			run.TotalMoney = 0
		}
	} else {
		run.Streak++
		if run.Streak >= 2 {
			if run.CurrentDifficulty < model.MaxDifficulty {
				run.CurrentDifficulty++
			}
			run.Streak = 0
		}
		run.TotalMoney += moneyAwarded
		run.QuestionsCorrect++
	}

	run.QuestionsAnswered++
	if difficultyUsed > run.HighestDifficulty {
		run.HighestDifficulty = difficultyUsed
	}
	// running mean over the difficulties actually used
	n := float64(run.QuestionsAnswered)
	run.AvgDifficulty = (run.AvgDifficulty*(n-1) + float64(difficultyUsed)) / n

	if run.LivesRemaining == 0 {
		run.Status = model.RunCompleted
	}
}
