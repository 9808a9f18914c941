package database

import (
	"fmt"
	"log"

	"ranked_arena_backend/internal/config"
	"ranked_arena_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Run{},
		&model.RunAnswer{},
		&model.Rating{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedQuestions(db)

	return db, nil
}

// seedQuestions inserts a starter question bank so a fresh database can
// serve runs before any admin import happens.
func seedQuestions(db *gorm.DB) {
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Question{
		{Topic: "accounting", Subtopic: "statements", Difficulty: 1, Format: model.FormatMCQ,
			Prompt:        "Which financial statement reports a company's revenues and expenses over a period?",
			Options:       `["Balance Sheet","Income Statement","Cash Flow Statement","Equity Statement"]`,
			CorrectAnswer: "Income Statement", Explanation: "The income statement covers a period; the balance sheet is a point-in-time snapshot.", ExpectedTimeSec: 20},
		{Topic: "accounting", Subtopic: "statements", Difficulty: 1, Format: model.FormatFill,
			Prompt:        "Assets = Liabilities + ____",
			CorrectAnswer: "Equity", Explanation: "The fundamental accounting equation.", ExpectedTimeSec: 15},
		{Topic: "markets", Subtopic: "instruments", Difficulty: 2, Format: model.FormatMCQ,
			Prompt:        "A bond's price moves in which direction relative to interest rates?",
			Options:       `["Same","Opposite","Unrelated","Only with inflation"]`,
			CorrectAnswer: "Opposite", Explanation: "Prices fall when rates rise.", ExpectedTimeSec: 20},
		{Topic: "markets", Subtopic: "instruments", Difficulty: 2, Format: model.FormatMulti,
			Prompt:        "Select all derivatives.",
			Options:       `["Forward","Common Stock","Swap","Option","Treasury Bill"]`,
			CorrectAnswer: "Forward,Swap,Option", Explanation: "Stocks and T-bills are cash instruments.", ExpectedTimeSec: 30},
		{Topic: "valuation", Subtopic: "dcf", Difficulty: 3, Format: model.FormatMCQ,
			Prompt:        "In a DCF, free cash flows are discounted at the:",
			Options:       `["Risk-free rate","Cost of equity","WACC","Coupon rate"]`,
			CorrectAnswer: "WACC", Explanation: "Unlevered FCF pairs with the weighted average cost of capital.", ExpectedTimeSec: 25},
		{Topic: "valuation", Subtopic: "dcf", Difficulty: 3, Format: model.FormatDrag,
			Prompt:        "Order the DCF steps.",
			Options:       `["Project FCF","Estimate WACC","Discount to PV","Add terminal value"]`,
			CorrectAnswer: "Project FCF,Estimate WACC,Discount to PV,Add terminal value", ExpectedTimeSec: 40},
		{Topic: "valuation", Subtopic: "multiples", Difficulty: 4, Format: model.FormatMulti,
			Prompt:        "Select all enterprise-value multiples.",
			Options:       `["EV/EBITDA","P/E","EV/Sales","P/B","EV/EBIT"]`,
			CorrectAnswer: "EV/EBITDA,EV/Sales,EV/EBIT", Explanation: "P/E and P/B are equity multiples.", ExpectedTimeSec: 35},
		{Topic: "ma", Subtopic: "accretion", Difficulty: 4, Format: model.FormatFill,
			Prompt:        "An all-stock deal is accretive when the acquirer's P/E is ____ than the target's.",
			CorrectAnswer: "higher", ExpectedTimeSec: 30},
		{Topic: "lbo", Subtopic: "returns", Difficulty: 5, Format: model.FormatMCQ,
			Prompt:        "Which lever contributes most to LBO returns in a flat-multiple exit?",
			Options:       `["Multiple expansion","Debt paydown","Dividend recap","Fee reduction"]`,
			CorrectAnswer: "Debt paydown", Explanation: "With no multiple expansion the equity grows via deleveraging and EBITDA growth.", ExpectedTimeSec: 40},
		{Topic: "lbo", Subtopic: "structure", Difficulty: 5, Format: model.FormatDrag,
			Prompt:        "Order the capital structure from senior to junior.",
			Options:       `["Revolver","Term Loan","Senior Notes","Mezzanine","Common Equity"]`,
			CorrectAnswer: "Revolver,Term Loan,Senior Notes,Mezzanine,Common Equity", ExpectedTimeSec: 45},
	}

	for _, q := range defaults {
		db.Create(&q)
	}
}
