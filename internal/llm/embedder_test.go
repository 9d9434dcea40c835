package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEmbedder(config *Config, fn embedFunc) *GeminiEmbedder {
	return &GeminiEmbedder{config: config, embed: fn}
}

func TestNewGeminiEmbedder_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestGeminiEmbedder_Embed(t *testing.T) {
	var gotText string
	e := fakeEmbedder(DefaultConfig(), func(_ context.Context, text string) (*genai.EmbedContentResponse, error) {
		gotText = text
		return &genai.EmbedContentResponse{Embedding: &genai.ContentEmbedding{Values: []float32{0.1, 0.2}}}, nil
	})

	vec, err := e.Embed(context.Background(), "golang engineer")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vec)
	assert.Equal(t, "golang engineer", gotText)
}

func TestGeminiEmbedder_EmbedErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	failing := fakeEmbedder(DefaultConfig(), func(context.Context, string) (*genai.EmbedContentResponse, error) {
		return nil, boom
	})

	_, err := failing.Embed(context.Background(), "text")

	var embedErr *EmbedError
	require.ErrorAs(t, err, &embedErr)
	assert.Equal(t, DefaultEmbeddingModel, embedErr.Model)
	assert.ErrorIs(t, err, boom)

	empty := fakeEmbedder(DefaultConfig(), func(context.Context, string) (*genai.EmbedContentResponse, error) {
		return &genai.EmbedContentResponse{}, nil
	})
	_, err = empty.Embed(context.Background(), "text")
	require.ErrorAs(t, err, &embedErr)
	assert.Equal(t, "embedding with text-embedding-004 failed: empty embedding in response", err.Error())
}

func TestGeminiEmbedder_Metadata(t *testing.T) {
	e := fakeEmbedder(DefaultConfig().WithModel("embedding-001"), nil)
	assert.Equal(t, "embedding-001", e.ModelName())
	assert.True(t, e.Reentrant())
	assert.NoError(t, e.Close())

	serial := fakeEmbedder(&Config{Model: "m", Concurrent: false}, nil)
	assert.False(t, serial.Reentrant())
}

func TestConfig_WithModel(t *testing.T) {
	base := DefaultConfig()

	assert.Equal(t, "custom", base.WithModel("custom").Model)
	assert.Equal(t, DefaultEmbeddingModel, base.WithModel("").Model)
	assert.Equal(t, DefaultEmbeddingModel, base.Model)
}
