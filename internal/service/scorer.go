package service

import (
	"strings"

	"ranked_arena_backend/internal/model"
)

// Score grades a response against the stored correct answer for the given
// question format and returns a value in [0,1]. It is pure and never fails:
// malformed, empty or structurally corrupt input degrades to 0.
func Score(format, correctAnswer, response string) float64 {
	if strings.TrimSpace(correctAnswer) == "" {
		return 0
	}

	switch format {
	case model.FormatMCQ, model.FormatFill:
		return scoreExact(correctAnswer, response)
	case model.FormatMulti:
		return scoreMulti(correctAnswer, response)
	case model.FormatDrag:
		return scoreOrdered(correctAnswer, response)
	default:
		return 0
	}
}

func scoreExact(correctAnswer, response string) float64 {
	if strings.EqualFold(strings.TrimSpace(correctAnswer), strings.TrimSpace(response)) {
		return 1
	}
	return 0
}

// scoreMulti gives partial credit for a correct subset and pushes the score
// toward zero (never negative) for over-selection.
func scoreMulti(correctAnswer, response string) float64 {
	correct := tokenSet(correctAnswer)
	if len(correct) == 0 {
		return 0
	}
	selected := tokenSet(response)

	correctSelected := 0
	wrongSelected := 0
	for token := range selected {
		if correct[token] {
			correctSelected++
		} else {
			wrongSelected++
		}
	}

	score := float64(correctSelected-wrongSelected) / float64(len(correct))
	return clamp01(score)
}

// scoreOrdered compares the two token sequences position by position over
// the overlapping length; the denominator is always the full correct
// sequence, so missing trailing positions count against the score.
func scoreOrdered(correctAnswer, response string) float64 {
	correct := tokenList(correctAnswer)
	if len(correct) == 0 {
		return 0
	}
	given := tokenList(response)

	matched := 0
	for i := 0; i < len(correct) && i < len(given); i++ {
		if strings.EqualFold(correct[i], given[i]) {
			matched++
		}
	}

	return clamp01(float64(matched) / float64(len(correct)))
}

func tokenList(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokenList(s) {
		set[strings.ToLower(t)] = true
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
