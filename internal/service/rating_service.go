package service

import (
	"context"
	"encoding/json"
	"time"

	"ranked_arena_backend/internal/config"
	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/repository"
	"ranked_arena_backend/internal/util"
	"ranked_arena_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "arena:leaderboard"

type RatingService struct {
	RunRepo    *repository.RunRepository
	RatingRepo *repository.RatingRepository
	Redis      *redis.Client
	Cfg        *config.Config
	DB         *gorm.DB
}

func NewRatingService(runRepo *repository.RunRepository, ratingRepo *repository.RatingRepository, rdb *redis.Client, cfg *config.Config, db *gorm.DB) *RatingService {
	return &RatingService{
		RunRepo:    runRepo,
		RatingRepo: ratingRepo,
		Redis:      rdb,
		Cfg:        cfg,
		DB:         db,
	}
}

// FinalizeRun folds a terminal run into the caller's rating exactly once.
// The whole read-modify-write runs in one transaction with the run and
// rating rows locked, so two finalize calls can never settle against the
// same stale snapshot; the loser of the race sees the finalized flag and
// gets ErrRunAlreadyFinalized.
func (s *RatingService) FinalizeRun(userID uint, runID string) (*SettleOutcome, error) {
	var outcome SettleOutcome

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		run, err := s.RunRepo.FindByIDForUpdate(tx, runID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrRunNotFound
			}
			return err
		}
		if run.UserID != userID {
			return util.ErrPermissionDenied
		}
		if !run.Terminal() {
			return util.ErrRunNotTerminal
		}
		if run.Finalized {
			return util.ErrRunAlreadyFinalized
		}

		rating, err := s.RatingRepo.FindByUserForUpdate(tx, userID)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			rating = &model.Rating{
				UserID:          userID,
				MarketValue:     MinMarketValue,
				PeakMarketValue: MinMarketValue,
				Title:           TitleIntern,
			}
			if err := tx.Create(rating).Error; err != nil {
				return err
			}
		}

		outcome = SettleRun(SettleInput{
			TotalMoney:        run.TotalMoney,
			QuestionsCorrect:  run.QuestionsCorrect,
			QuestionsAnswered: run.QuestionsAnswered,
			AvgDifficulty:     run.AvgDifficulty,
			MarketValue:       rating.MarketValue,
			PeakMarketValue:   rating.PeakMarketValue,
		})

		fromVersion := rating.Version
		rating.MarketValue = outcome.NewMarketValue
		rating.PeakMarketValue = outcome.NewPeak
		rating.Title = outcome.NewTitle
		rating.PlacementRunsCompleted++
		if err := s.RatingRepo.SaveWithVersion(tx, rating, fromVersion); err != nil {
			return err
		}

		// second guard against a concurrent finalize that slipped past the
		// row lock on a different connection
		res := tx.Model(&model.Run{}).
			Where("id = ? AND finalized = ?", run.ID, false).
			Updates(map[string]interface{}{
				"finalized":          true,
				"compensation_delta": outcome.CompensationDelta,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrRunAlreadyFinalized
		}
		return nil
	})
	if err != nil {
		if err == util.ErrVersionConflict {
			monitoring.VersionConflicts.WithLabelValues("rating").Inc()
		}
		return nil, err
	}

	monitoring.RunsFinalized.Inc()
	return &outcome, nil
}

func (s *RatingService) GetRating(userID uint) (*model.Rating, error) {
	rating, err := s.RatingRepo.FindByUser(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

// NextTierFor reports the tier above the caller's current title, nil at
// the top of the ladder.
func (s *RatingService) NextTierFor(userID uint) (*Tier, error) {
	rating, err := s.GetRating(userID)
	if err != nil {
		return nil, err
	}
	return NextTier(rating.Title), nil
}

// Leaderboard serves the sorted top ratings, cached in Redis with a TTL so
// the read stays cheap under load.
func (s *RatingService) Leaderboard(ctx context.Context) ([]repository.LeaderboardRow, error) {
	if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
		var rows []repository.LeaderboardRow
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			return rows, nil
		}
	}

	rows, err := s.RatingRepo.ListTopWithNames(s.Cfg.Arena.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rows); err == nil {
		ttl := time.Duration(s.Cfg.Arena.LeaderboardTTLMinutes) * time.Minute
		s.Redis.Set(ctx, leaderboardCacheKey, payload, ttl)
	}
	return rows, nil
}
