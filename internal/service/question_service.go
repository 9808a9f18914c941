package service

import (
	"errors"

	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/repository"
	"ranked_arena_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

type QuestionRequest struct {
	Topic           string `json:"topic" binding:"required"`
	Subtopic        string `json:"subtopic"`
	Difficulty      int    `json:"difficulty" binding:"required"`
	Format          string `json:"format" binding:"required"`
	Prompt          string `json:"prompt" binding:"required"`
	Options         string `json:"options"`
	CorrectAnswer   string `json:"correctAnswer" binding:"required"`
	Explanation     string `json:"explanation"`
	ExpectedTimeSec int    `json:"expectedTimeSec"`
	Tags            string `json:"tags"`
}

func validFormat(format string) bool {
	switch format {
	case model.FormatMCQ, model.FormatMulti, model.FormatFill, model.FormatDrag:
		return true
	}
	return false
}

func (s *QuestionService) validate(req *QuestionRequest) error {
	if !validFormat(req.Format) {
		return errors.New("unknown question format")
	}
	if req.Difficulty < model.MinDifficulty || req.Difficulty > model.MaxDifficulty {
		return errors.New("difficulty must be between 1 and 5")
	}
	return nil
}

func (s *QuestionService) Create(req *QuestionRequest) (*model.Question, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	q := &model.Question{
		Topic:           req.Topic,
		Subtopic:        req.Subtopic,
		Difficulty:      req.Difficulty,
		Format:          req.Format,
		Prompt:          req.Prompt,
		Options:         req.Options,
		CorrectAnswer:   req.CorrectAnswer,
		Explanation:     req.Explanation,
		ExpectedTimeSec: req.ExpectedTimeSec,
		Tags:            req.Tags,
	}
	if q.ExpectedTimeSec <= 0 {
		q.ExpectedTimeSec = 30
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(id uint, req *QuestionRequest) (*model.Question, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	q.Topic = req.Topic
	q.Subtopic = req.Subtopic
	q.Difficulty = req.Difficulty
	q.Format = req.Format
	q.Prompt = req.Prompt
	q.Options = req.Options
	q.CorrectAnswer = req.CorrectAnswer
	q.Explanation = req.Explanation
	if req.ExpectedTimeSec > 0 {
		q.ExpectedTimeSec = req.ExpectedTimeSec
	}
	q.Tags = req.Tags
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) List(page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(page, limit)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}
