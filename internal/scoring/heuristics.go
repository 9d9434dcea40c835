// Package scoring combines structural heuristics and relevance into the final ATS score
// and explains it as feedback.
package scoring

import (
	"math"
	"strings"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/parsing"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/validation"
)

// Points awarded or deducted by the heuristic scorer
const (
	educationPoints   = 12
	experiencePoints  = 18
	skillsPoints      = 10
	contactPoints     = 10
	formattingPenalty = -10
	parsingPenalty    = -20

	// MaxHeuristicScore is the upper bound of the heuristic component.
	MaxHeuristicScore = 50.0
)

// RiskDetector lists formatting risks found in text.
type RiskDetector func(text string) []string

// Heuristics is the structural score of a resume with its explanation.
type Heuristics struct {
	Score     float64
	Feedback  []string
	Breakdown types.Breakdown
}

// ComputeHeuristics awards points for each section present and for contact
// details, and deducts points for formatting risks and parsing errors. The
// score is clamped to [0, MaxHeuristicScore]. A nil detect uses
// validation.DetectFormattingRisks.
func ComputeHeuristics(text string, sections types.SectionMap, parsingErrors []string, detect RiskDetector) Heuristics {
	if detect == nil {
		detect = validation.DetectFormattingRisks
	}

	var (
		score     float64
		feedback  = []string{}
		breakdown types.Breakdown
	)

	if sections.Has(types.SectionEducation) {
		breakdown.Education = educationPoints
		score += educationPoints
	} else {
		feedback = append(feedback, "Missing Education section")
	}

	if sections.Has(types.SectionExperience) {
		breakdown.Experience = experiencePoints
		score += experiencePoints
	} else {
		feedback = append(feedback, "Missing Experience section")
	}

	if sections.Has(types.SectionSkills) {
		breakdown.Skills = skillsPoints
		score += skillsPoints
	} else {
		feedback = append(feedback, "Missing Skills section")
	}

	if parsing.ExtractContact(text).HasAny() {
		breakdown.Contact = contactPoints
		score += contactPoints
	} else {
		feedback = append(feedback, "Missing or invalid contact information")
	}

	if risks := detect(text); len(risks) > 0 {
		breakdown.FormattingPenalty = formattingPenalty
		score += formattingPenalty
		for _, risk := range risks {
			feedback = append(feedback, "Formatting risk: "+risk)
		}
	}

	if len(parsingErrors) > 0 {
		breakdown.ParsingPenalty = parsingPenalty
		score += parsingPenalty
		feedback = append(feedback, "Parsing issues detected: "+strings.Join(parsingErrors, "; "))
	}

	return Heuristics{
		Score:     clamp(score, 0, MaxHeuristicScore),
		Feedback:  feedback,
		Breakdown: breakdown,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
