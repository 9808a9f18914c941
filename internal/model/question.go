package model

const (
	FormatMCQ   = "mcq"
	FormatMulti = "multi"
	FormatFill  = "fill"
	FormatDrag  = "drag"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is immutable arena content: created by admin import, never
// mutated by the run engine.
// swagger:model Question
type Question struct {
	BaseModel

	Topic           string `gorm:"size:100;index" json:"topic"`
	Subtopic        string `gorm:"size:100" json:"subtopic"`
	Difficulty      int    `gorm:"index;default:1" json:"difficulty"` // 1-5
	Format          string `gorm:"type:enum('mcq','multi','fill','drag');default:'mcq'" json:"format"`
	Prompt          string `gorm:"type:text" json:"prompt"`
	Options         string `gorm:"type:json" json:"options"` // JSON array of choices
	CorrectAnswer   string `gorm:"type:text" json:"-"`       // format-encoded, never sent to players
	Explanation     string `gorm:"type:text" json:"explanation"`
	ExpectedTimeSec int    `gorm:"default:30" json:"expectedTimeSec"`
	Tags            string `gorm:"type:json" json:"tags"`
}

func (Question) TableName() string {
	return "questions"
}
