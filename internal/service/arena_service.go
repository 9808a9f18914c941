package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"ranked_arena_backend/internal/config"
	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/repository"
	"ranked_arena_backend/internal/util"
	"ranked_arena_backend/pkg/logger"
	"ranked_arena_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// casRetries bounds how often a submission is retried after losing an
// optimistic-lock race before the conflict is surfaced to the caller.
const casRetries = 3

const questionPoolTTL = 5 * time.Minute

type ArenaService struct {
	RunRepo      *repository.RunRepository
	QuestionRepo *repository.QuestionRepository
	RatingRepo   *repository.RatingRepository
	Redis        *redis.Client
	Cfg          *config.Config
	DB           *gorm.DB
}

func NewArenaService(runRepo *repository.RunRepository, questionRepo *repository.QuestionRepository, ratingRepo *repository.RatingRepository, rdb *redis.Client, cfg *config.Config, db *gorm.DB) *ArenaService {
	return &ArenaService{
		RunRepo:      runRepo,
		QuestionRepo: questionRepo,
		RatingRepo:   ratingRepo,
		Redis:        rdb,
		Cfg:          cfg,
		DB:           db,
	}
}

type SubmitAnswerRequest struct {
	QuestionID   uint   `json:"questionId" binding:"required"`
	Seq          int    `json:"seq" binding:"required"`
	Response     string `json:"response"`
	TimeTakenSec int    `json:"timeTakenSec"`
}

type SubmitAnswerResult struct {
	Score             float64         `json:"score"`
	MoneyAwarded      int             `json:"moneyAwarded"`
	MoneyPenalty      int             `json:"moneyPenalty"`
	LivesRemaining    int             `json:"livesRemaining"`
	Streak            int             `json:"streak"`
	CurrentDifficulty int             `json:"currentDifficulty"`
	RunStatus         model.RunStatus `json:"runStatus"`
}

// StartRun opens a ranked session with default lives at difficulty 1. The
// rating row is created here so the title-dependent penalty cap has
// something to read from the first answer on.
func (s *ArenaService) StartRun(userID uint) (*model.Run, error) {
	if _, err := s.RatingRepo.EnsureExists(userID, MinMarketValue, TitleIntern); err != nil {
		return nil, err
	}

	run := &model.Run{
		UserID:            userID,
		StartedAt:         time.Now(),
		DurationSec:       s.Cfg.Arena.RunDurationSec,
		LivesTotal:        s.Cfg.Arena.LivesTotal,
		LivesRemaining:    s.Cfg.Arena.LivesTotal,
		CurrentDifficulty: model.MinDifficulty,
		Status:            model.RunActive,
	}
	if err := s.RunRepo.Create(run); err != nil {
		return nil, err
	}

	monitoring.RunsStarted.Inc()
	return run, nil
}

func (s *ArenaService) GetRun(userID uint, runID string) (*model.Run, error) {
	run, err := s.RunRepo.FindByID(runID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRunNotFound
		}
		return nil, err
	}
	if run.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return run, nil
}

// NextQuestion draws from the current-difficulty pool in the caller's
// daily deterministic order. The ordering is a pure function of
// (userID, calendar date), so it survives restarts and needs no session
// store; only the raw id pool is cached.
func (s *ArenaService) NextQuestion(userID uint, runID string) (*model.Question, error) {
	run, err := s.GetRun(userID, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != model.RunActive {
		return nil, util.ErrRunNotActive
	}
	if time.Now().After(run.Deadline()) {
		return nil, util.ErrRunExpired
	}

	ids, err := s.questionPool(run.CurrentDifficulty)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, util.ErrQuestionNotFound
	}

	perm := ShuffledIndexes(DailySeed(strconv.FormatUint(uint64(userID), 10), time.Now()), len(ids))
	qid := ids[perm[run.QuestionsAnswered%len(ids)]]

	q, err := s.QuestionRepo.FindByID(qid)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	return q, nil
}

// SubmitAnswer applies one answer to a run. Answers are single-writer per
// run: the state transition is computed against a version snapshot and
// saved with a compare-and-swap, retried a bounded number of times when a
// concurrent writer got there first.
func (s *ArenaService) SubmitAnswer(userID uint, runID string, req *SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		result, err := s.trySubmitAnswer(userID, runID, req)
		if err == util.ErrVersionConflict {
			monitoring.VersionConflicts.WithLabelValues("run").Inc()
			continue
		}
		return result, err
	}
	return nil, util.ErrVersionConflict
}

func (s *ArenaService) trySubmitAnswer(userID uint, runID string, req *SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	run, err := s.GetRun(userID, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != model.RunActive {
		return nil, util.ErrRunNotActive
	}
	// hard wall-clock budget: late answers are rejected even with lives left
	if time.Now().After(run.Deadline()) {
		return nil, util.ErrRunExpired
	}

	expected := run.QuestionsAnswered + 1
	if req.Seq < expected {
		return nil, util.ErrDuplicateAnswer
	}
	if req.Seq > expected {
		return nil, util.ErrOutOfOrderAnswer
	}

	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}

	title := TitleIntern
	if rating, err := s.RatingRepo.FindByUser(userID); err == nil {
		title = rating.Title
	}

	score := Score(question.Format, question.CorrectAnswer, req.Response)
	rewardCtx := RewardContext{
		Difficulty:      run.CurrentDifficulty,
		TimeTakenSec:    req.TimeTakenSec,
		ExpectedTimeSec: question.ExpectedTimeSec,
		StreakBefore:    run.Streak,
		Title:           title,
	}
	awarded := MoneyAwarded(score, rewardCtx)
	penalty := MoneyPenalty(score, rewardCtx)

	fromVersion := run.Version
	difficultyUsed := run.CurrentDifficulty
	applyAnswer(run, score, awarded, penalty)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		answer := &model.RunAnswer{
			RunID:        run.ID,
			Seq:          req.Seq,
			QuestionID:   question.ID,
			Response:     req.Response,
			Score:        score,
			MoneyAwarded: awarded,
			MoneyPenalty: penalty,
			Difficulty:   difficultyUsed,
			TimeTakenSec: req.TimeTakenSec,
		}
		if err := s.RunRepo.CreateAnswer(tx, answer); err != nil {
			if util.IsDuplicateKey(err) {
				return util.ErrDuplicateAnswer
			}
			return err
		}
		return s.RunRepo.SaveWithVersion(tx, run, fromVersion)
	})
	if err != nil {
		return nil, err
	}

	monitoring.AnswersScored.WithLabelValues(strconv.FormatBool(score > 0)).Inc()
	if run.Terminal() {
		monitoring.RunsEnded.WithLabelValues(string(run.Status)).Inc()
	}

	return &SubmitAnswerResult{
		Score:             score,
		MoneyAwarded:      awarded,
		MoneyPenalty:      penalty,
		LivesRemaining:    run.LivesRemaining,
		Streak:            run.Streak,
		CurrentDifficulty: run.CurrentDifficulty,
		RunStatus:         run.Status,
	}, nil
}

// ExpireOverdueRuns is the background sweep that moves over-budget active
// runs to expired, independent of any in-flight submission.
func (s *ArenaService) ExpireOverdueRuns() error {
	count, err := s.RunRepo.ExpireOverdue(time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		monitoring.RunsEnded.WithLabelValues(string(model.RunExpired)).Add(float64(count))
		logger.Log.Info("expired overdue runs", zap.Int64("count", count))
	}
	return nil
}

func (s *ArenaService) questionPool(difficulty int) ([]uint, error) {
	ctx := context.Background()
	key := "arena:qpool:" + strconv.Itoa(difficulty)

	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var ids []uint
		if err := json.Unmarshal([]byte(cached), &ids); err == nil {
			return ids, nil
		}
	}

	ids, err := s.QuestionRepo.IDsByDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(ids); err == nil {
		s.Redis.Set(ctx, key, payload, questionPoolTTL)
	}
	return ids, nil
}
