// Package types provides type definitions for structured data used throughout the ATS scoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Breakdown itemises the final score. Every key is always serialised, in
// declaration order, even when its value is zero.
type Breakdown struct {
	Education         float64 `json:"education" yaml:"education"`
	Experience        float64 `json:"experience" yaml:"experience"`
	Skills            float64 `json:"skills" yaml:"skills"`
	Contact           float64 `json:"contact" yaml:"contact"`
	FormattingPenalty float64 `json:"formattingPenalty" yaml:"formattingPenalty"`
	ParsingPenalty    float64 `json:"parsingPenalty" yaml:"parsingPenalty"`
	Heuristics        float64 `json:"heuristics" yaml:"heuristics"`
	Relevance         float64 `json:"relevance" yaml:"relevance"`
}

// BreakdownEntry is a single key/value pair of a Breakdown.
type BreakdownEntry struct {
	Key   string
	Value float64
	// Points is true for the fixed-point heuristic components, which are
	// whole numbers, and false for the derived totals.
	Points bool
}

// Entries returns the breakdown as key/value pairs in key order.
func (b Breakdown) Entries() []BreakdownEntry {
	return []BreakdownEntry{
		{Key: "education", Value: b.Education, Points: true},
		{Key: "experience", Value: b.Experience, Points: true},
		{Key: "skills", Value: b.Skills, Points: true},
		{Key: "contact", Value: b.Contact, Points: true},
		{Key: "formattingPenalty", Value: b.FormattingPenalty, Points: true},
		{Key: "parsingPenalty", Value: b.ParsingPenalty, Points: true},
		{Key: "heuristics", Value: b.Heuristics},
		{Key: "relevance", Value: b.Relevance},
	}
}

// WithTotals returns a copy of b with the heuristics and relevance totals set.
func (b Breakdown) WithTotals(heuristics, relevance float64) Breakdown {
	b.Heuristics = heuristics
	b.Relevance = relevance
	return b
}
