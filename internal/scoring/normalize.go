package scoring

import "math"

const (
	// MaxTotalScore is the upper bound of the final score.
	MaxTotalScore = 100.0
	// relevanceScale maps a [0, 1] similarity onto the relevance half of the score.
	relevanceScale = 50.0
)

// Totals are the combined score and the two components that produced it.
type Totals struct {
	Total      float64
	Heuristics float64
	Relevance  float64
}

// NormalizeScore merges the heuristic score with an optional relevance value.
// With no relevance, or a relevance of exactly zero, the heuristic score is
// doubled so it alone spans the full range. Otherwise the relevance is scaled
// to [0, 50] and added. The total is clamped to [0, 100] and rounded to two
// decimals.
func NormalizeScore(heuristics float64, relevance *float64) Totals {
	var t Totals
	if relevance == nil || *relevance == 0 {
		t.Heuristics = heuristics * 2
		t.Relevance = 0
		t.Total = t.Heuristics
	} else {
		t.Heuristics = heuristics
		t.Relevance = *relevance * relevanceScale
		t.Total = t.Heuristics + t.Relevance
	}
	t.Total = round2(clamp(t.Total, 0, MaxTotalScore))
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
