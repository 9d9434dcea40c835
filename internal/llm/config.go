// Package llm provides the hosted embedding model used for semantic similarity.
package llm

// Provider represents an embedding model provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultEmbeddingModel is used when no model is configured.
const DefaultEmbeddingModel = "text-embedding-004"

// Config holds the embedding model configuration
type Config struct {
	Provider Provider
	Model    string
	// Concurrent allows several Embed calls to run in parallel.
	Concurrent bool
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderGemini,
		Model:      DefaultEmbeddingModel,
		Concurrent: true,
	}
}

// WithModel returns a copy of c using model, or c's model when model is empty
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}
