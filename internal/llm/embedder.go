package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// embedFunc is the single remote call an embedder makes.
type embedFunc func(ctx context.Context, text string) (*genai.EmbedContentResponse, error)

// GeminiEmbedder embeds text with a Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	config *Config
	embed  embedFunc
}

// NewGeminiEmbedder creates an embedder for config.Model.
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(config.Model)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{
		client: client,
		config: config,
		embed: func(ctx context.Context, text string) (*genai.EmbedContentResponse, error) {
			return model.EmbedContent(ctx, genai.Text(text))
		},
	}, nil
}

// Embed returns the embedding vector of text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.embed(ctx, text)
	if err != nil {
		return nil, &EmbedError{Model: e.config.Model, Message: "request failed", Cause: err}
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &EmbedError{Model: e.config.Model, Message: "empty embedding in response"}
	}
	return resp.Embedding.Values, nil
}

// ModelName returns the configured model name.
func (e *GeminiEmbedder) ModelName() string {
	return e.config.Model
}

// Reentrant reports whether concurrent Embed calls are allowed.
func (e *GeminiEmbedder) Reentrant() bool {
	return e.config.Concurrent
}

// Close releases resources held by the client
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
