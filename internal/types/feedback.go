// Package types provides type definitions for structured data used throughout the ATS scoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FeedbackKind classifies a feedback record. Records are produced in a fixed
// order and rendered to plain text separately.
type FeedbackKind string

// Feedback kinds, in the order they appear in a feedback list.
const (
	FeedbackStructural     FeedbackKind = "structural"
	FeedbackRelevance      FeedbackKind = "relevance"
	FeedbackRelevanceBand  FeedbackKind = "relevance_band"
	FeedbackSection        FeedbackKind = "section"
	FeedbackEmail          FeedbackKind = "email"
	FeedbackPhone          FeedbackKind = "phone"
	FeedbackBreakdown      FeedbackKind = "breakdown"
	FeedbackRecommendation FeedbackKind = "recommendation"
)

// Payload keys used by feedback records.
const (
	PayloadMessage = "message"
	PayloadBackend = "backend"
	PayloadValue   = "value"
	PayloadBand    = "band"
	PayloadSection = "section"
	PayloadPresent = "present"
	PayloadSummary = "summary"
	PayloadTopic   = "topic"
)

// Relevance bands.
const (
	BandLow      = "low"
	BandModerate = "moderate"
	BandStrong   = "strong"
)

// Recommendation topics.
const (
	TopicKeywords   = "keywords"
	TopicExperience = "experience"
)

// FeedbackItem is one structured feedback record.
type FeedbackItem struct {
	Kind    FeedbackKind      `json:"kind" yaml:"kind"`
	Payload map[string]string `json:"payload" yaml:"payload"`
}
