package repository

import (
	"ranked_arena_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) List(page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64
	if err := r.DB.Model(&model.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("id").Offset((page - 1) * limit).Limit(limit).Find(&questions).Error
	return questions, total, err
}

// IDsByDifficulty returns the id pool for one difficulty in stable id
// order; the daily shuffle permutes this list.
func (r *QuestionRepository) IDsByDifficulty(difficulty int) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Question{}).Where("difficulty = ?", difficulty).Order("id").Pluck("id", &ids).Error
	return ids, err
}
