package service

import "math"

// SettleInput is the aggregate of a completed run plus the current rating
// snapshot it is settled against.
type SettleInput struct {
	TotalMoney        int
	QuestionsCorrect  int
	QuestionsAnswered int
	AvgDifficulty     float64
	MarketValue       int
	PeakMarketValue   int
}

// SettleOutcome is the bounded rating adjustment produced by one run.
type SettleOutcome struct {
	CompensationDelta int    `json:"compensationDelta"`
	NewMarketValue    int    `json:"newMarketValue"`
	NewPeak           int    `json:"newPeak"`
	NewTitle          string `json:"newTitle"`
}

// SettleRun converts run aggregates into a compensation delta and the new
// rating values. Pure; the caller is responsible for applying the outcome
// atomically against the rating row.
//
// The per-answer rewards already price difficulty, speed and streaks, so
// this layer only re-weights the run total by overall accuracy and
// sustained difficulty (each multiplier bounded to roughly +/-15%), then
// compares it against an Elo-like par proportional to current rank. A
// zero-answer run scores 0 performance and therefore always lands below
// par.
func SettleRun(in SettleInput) SettleOutcome {
	accuracy := 0.0
	if in.QuestionsAnswered > 0 {
		accuracy = float64(in.QuestionsCorrect) / float64(in.QuestionsAnswered)
	}

	performance := float64(in.TotalMoney) * (0.85 + 0.3*accuracy) * (0.9 + 0.1*(in.AvgDifficulty/3))
	expected := float64(in.MarketValue) * 0.18

	delta := int(math.Round((performance - expected) / 2000))
	if delta > MaxCompensationDelta {
		delta = MaxCompensationDelta
	}
	if delta < -MaxCompensationDelta {
		delta = -MaxCompensationDelta
	}

	newValue := in.MarketValue + delta
	if newValue < MinMarketValue {
		newValue = MinMarketValue
	}
	if newValue > MaxMarketValue {
		newValue = MaxMarketValue
	}

	newPeak := in.PeakMarketValue
	if newValue > newPeak {
		newPeak = newValue
	}

	return SettleOutcome{
		CompensationDelta: delta,
		NewMarketValue:    newValue,
		NewPeak:           newPeak,
		NewTitle:          TitleFor(newValue),
	}
}
