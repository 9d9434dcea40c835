// Package types provides type definitions for structured data used throughout the ATS scoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Backend identifies the similarity backend that produced a relevance value.
type Backend string

const (
	// BackendTFIDF is the frequency-weighted vector similarity backend. It is always available.
	BackendTFIDF Backend = "TF-IDF"
	// BackendEmbedding is the sentence-embedding similarity backend.
	BackendEmbedding Backend = "SBERT"
)

// ModelInfo describes the similarity model configuration.
type ModelInfo struct {
	SBERTEnabled bool   `json:"sbert_enabled" yaml:"sbert_enabled"`
	ModelName    string `json:"model_name" yaml:"model_name"`
}

// ParsedSections is the section view returned to callers.
type ParsedSections struct {
	Education  *string  `json:"education" yaml:"education"`
	Experience *string  `json:"experience" yaml:"experience"`
	Skills     []string `json:"skills" yaml:"skills"`
}

// Result is the complete scoring response for one resume.
type Result struct {
	RawText          string         `json:"rawText" yaml:"rawText"`
	ParsedSkills     []string       `json:"parsedSkills" yaml:"parsedSkills"`
	ParsingErrors    []string       `json:"parsingErrors" yaml:"parsingErrors"`
	ATSScore         float64        `json:"atsScore" yaml:"atsScore"`
	Breakdown        Breakdown      `json:"breakdown" yaml:"breakdown"`
	Feedback         []string       `json:"feedback" yaml:"feedback"`
	FeedbackItems    []FeedbackItem `json:"feedbackItems" yaml:"feedbackItems"`
	Contact          ContactInfo    `json:"contact" yaml:"contact"`
	Sections         ParsedSections `json:"sections" yaml:"sections"`
	SimilarityMethod Backend        `json:"similarity_method" yaml:"similarity_method"`
	ModelInfo        ModelInfo      `json:"model_info" yaml:"model_info"`
}
