package repository

import (
	"time"

	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RunRepository struct {
	DB *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{DB: db}
}

func (r *RunRepository) Create(run *model.Run) error {
	return r.DB.Create(run).Error
}

func (r *RunRepository) FindByID(id string) (*model.Run, error) {
	var run model.Run
	if err := r.DB.First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepository) FindByIDForUpdate(tx *gorm.DB, id string) (*model.Run, error) {
	var run model.Run
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// SaveWithVersion persists a mutated run only if nobody else advanced it
// since it was read. fromVersion is the version the mutation was computed
// from; a stale write affects zero rows and surfaces as ErrVersionConflict.
func (r *RunRepository) SaveWithVersion(tx *gorm.DB, run *model.Run, fromVersion int) error {
	run.Version = fromVersion + 1
	res := tx.Model(&model.Run{}).
		Where("id = ? AND version = ?", run.ID, fromVersion).
		Updates(map[string]interface{}{
			"lives_remaining":    run.LivesRemaining,
			"current_difficulty": run.CurrentDifficulty,
			"streak":             run.Streak,
			"total_money":        run.TotalMoney,
			"questions_answered": run.QuestionsAnswered,
			"questions_correct":  run.QuestionsCorrect,
			"highest_difficulty": run.HighestDifficulty,
			"avg_difficulty":     run.AvgDifficulty,
			"status":             run.Status,
			"version":            run.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrVersionConflict
	}
	return nil
}

func (r *RunRepository) CreateAnswer(tx *gorm.DB, answer *model.RunAnswer) error {
	return tx.Create(answer).Error
}

func (r *RunRepository) CountAnswers(runID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.RunAnswer{}).Where("run_id = ?", runID).Count(&count).Error
	return count, err
}

// ExpireOverdue marks every active run whose wall-clock budget has elapsed
// as expired. Runs independently of answer traffic.
func (r *RunRepository) ExpireOverdue(now time.Time) (int64, error) {
	res := r.DB.Model(&model.Run{}).
		Where("status = ? AND TIMESTAMPADD(SECOND, duration_sec, started_at) <= ?", model.RunActive, now).
		Updates(map[string]interface{}{
			"status":  model.RunExpired,
			"version": gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}
