package service

const (
	MinMarketValue       = 60_000
	MaxMarketValue       = 1_500_000
	MaxCompensationDelta = 40_000
)

const TitleIntern = "Intern"

// Tier is one rung of the title ladder.
type Tier struct {
	Title     string `json:"title"`
	Threshold int    `json:"threshold"`
}

// tiers is ordered ascending by threshold; TitleFor relies on that.
var tiers = []Tier{
	{TitleIntern, 60_000},
	{"Analyst", 100_000},
	{"Senior Analyst", 160_000},
	{"Associate", 240_000},
	{"Senior Associate", 350_000},
	{"Vice President", 500_000},
	{"Director", 680_000},
	{"Managing Director", 850_000},
	{"Elite MD", 1_000_000},
}

// TitleFor returns the highest tier whose threshold does not exceed the
// market value. Values below the bottom threshold still map to the bottom
// tier.
func TitleFor(marketValue int) string {
	title := tiers[0].Title
	for _, t := range tiers {
		if marketValue >= t.Threshold {
			title = t.Title
		}
	}
	return title
}

// ThresholdFor is the inverse lookup of TitleFor.
func ThresholdFor(title string) (int, bool) {
	for _, t := range tiers {
		if t.Title == title {
			return t.Threshold, true
		}
	}
	return 0, false
}

// NextTier returns the tier above the given title, or nil at the top or for
// unknown titles.
func NextTier(title string) *Tier {
	for i, t := range tiers {
		if t.Title == title {
			if i+1 < len(tiers) {
				next := tiers[i+1]
				return &next
			}
			return nil
		}
	}
	return nil
}

// Tiers returns a copy of the full ladder.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
