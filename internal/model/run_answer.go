package model

// RunAnswer is the per-answer audit row. The unique (run_id, seq) index is
// what rejects duplicate or replayed submissions for an already resolved
// position.
type RunAnswer struct {
	BaseModel

	RunID        string  `gorm:"index:idx_run_seq,unique;type:varchar(36)" json:"runId"`
	Seq          int     `gorm:"index:idx_run_seq,unique" json:"seq"`
	QuestionID   uint    `gorm:"index;type:bigint unsigned" json:"questionId"`
	Response     string  `gorm:"type:text" json:"response"`
	Score        float64 `json:"score"`
	MoneyAwarded int     `json:"moneyAwarded"`
	MoneyPenalty int     `json:"moneyPenalty"`
	Difficulty   int     `json:"difficulty"`
	TimeTakenSec int     `json:"timeTakenSec"`
}

func (RunAnswer) TableName() string {
	return "run_answers"
}
