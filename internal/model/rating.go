package model

// Rating is the persistent market-value row, one per user. Mutated only by
// the rating ledger at finalize time.
// swagger:model Rating
type Rating struct {
	BaseModel

	UserID                 uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	MarketValue            int    `json:"marketValue"`
	PeakMarketValue        int    `json:"peakMarketValue"`
	Title                  string `gorm:"size:50" json:"title"`
	PlacementRunsCompleted int    `json:"placementRunsCompleted"`

	// Version backs the optimistic compare-and-swap at finalize.
	Version int `gorm:"default:0" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}
