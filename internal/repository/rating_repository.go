package repository

import (
	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) FindByUser(userID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.DB.Where("user_id = ?", userID).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindByUserForUpdate takes the row lock that serializes concurrent
// finalize calls for the same user.
func (r *RatingRepository) FindByUserForUpdate(tx *gorm.DB, userID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// EnsureExists creates the placement-state rating row on first contact.
func (r *RatingRepository) EnsureExists(userID uint, initialValue int, initialTitle string) (*model.Rating, error) {
	rating, err := r.FindByUser(userID)
	if err == nil {
		return rating, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	rating = &model.Rating{
		UserID:          userID,
		MarketValue:     initialValue,
		PeakMarketValue: initialValue,
		Title:           initialTitle,
	}
	if err := r.DB.Create(rating).Error; err != nil {
		// two first-contact requests can race past the read; the loser
		// trips the unique user_id index and re-reads the winner's row
		if util.IsDuplicateKey(err) {
			return r.FindByUser(userID)
		}
		return nil, err
	}
	return rating, nil
}

// SaveWithVersion applies the settled rating only when computed from the
// current row version; a stale snapshot surfaces as ErrVersionConflict.
func (r *RatingRepository) SaveWithVersion(tx *gorm.DB, rating *model.Rating, fromVersion int) error {
	rating.Version = fromVersion + 1
	res := tx.Model(&model.Rating{}).
		Where("id = ? AND version = ?", rating.ID, fromVersion).
		Updates(map[string]interface{}{
			"market_value":             rating.MarketValue,
			"peak_market_value":        rating.PeakMarketValue,
			"title":                    rating.Title,
			"placement_runs_completed": rating.PlacementRunsCompleted,
			"version":                  rating.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrVersionConflict
	}
	return nil
}

// ListTop returns the highest-rated players for the leaderboard read.
func (r *RatingRepository) ListTop(limit int) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.DB.Order("market_value DESC").Limit(limit).Find(&ratings).Error
	return ratings, err
}

// LeaderboardRow is the denormalized leaderboard projection.
type LeaderboardRow struct {
	UserID          uint   `json:"userId"`
	Name            string `json:"name"`
	MarketValue     int    `json:"marketValue"`
	PeakMarketValue int    `json:"peakMarketValue"`
	Title           string `json:"title"`
}

func (r *RatingRepository) ListTopWithNames(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.DB.Table("ratings").
		Select("ratings.user_id, users.name, ratings.market_value, ratings.peak_market_value, ratings.title").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.deleted_at IS NULL").
		Order("ratings.market_value DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
