package model

import "time"

type RunStatus string

const (
	RunActive    RunStatus = "active"
	RunCompleted RunStatus = "completed"
	RunExpired   RunStatus = "expired"
)

// Run is one timed ranked session. It is mutated only by the arena engine
// and becomes immutable once its status leaves active, except for the
// finalized flag set by the rating ledger.
// swagger:model Run
type Run struct {
	UUIDBase

	UserID            uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	StartedAt         time.Time `json:"startedAt"`
	DurationSec       int       `json:"durationSec"`
	LivesTotal        int       `json:"livesTotal"`
	LivesRemaining    int       `json:"livesRemaining"`
	CurrentDifficulty int       `gorm:"default:1" json:"currentDifficulty"` // 1-5
	Streak            int       `json:"streak"`
	TotalMoney        int       `json:"totalMoney"`
	QuestionsAnswered int       `json:"questionsAnswered"`
	QuestionsCorrect  int       `json:"questionsCorrect"`
	HighestDifficulty int       `json:"highestDifficulty"`
	AvgDifficulty     float64   `json:"avgDifficulty"`
	CompensationDelta int       `json:"compensationDelta"`
	Status            RunStatus `gorm:"type:enum('active','completed','expired');default:'active';index" json:"status"`
	Finalized         bool      `gorm:"default:false" json:"finalized"`

	// Version backs the optimistic compare-and-swap on answer submission.
	Version int `gorm:"default:0" json:"-"`
}

func (Run) TableName() string {
	return "runs"
}

func (r *Run) Terminal() bool {
	return r.Status == RunCompleted || r.Status == RunExpired
}

// Deadline is the wall-clock instant after which answers are rejected and
// the expiry sweep may mark the run expired.
func (r *Run) Deadline() time.Time {
	return r.StartedAt.Add(time.Duration(r.DurationSec) * time.Second)
}
