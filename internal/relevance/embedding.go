package relevance

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/textclean"
)

// Embedder turns text into a fixed-size vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// ModelName identifies the model, e.g. "text-embedding-004".
	ModelName() string
	// Reentrant reports whether Embed may be called from several goroutines at once.
	Reentrant() bool
}

// Outcome is the result of an optional backend: either a similarity value or
// an explanation of why the backend could not produce one.
type Outcome struct {
	Value float64
	OK    bool
	// Reason is set when OK is false.
	Reason error
}

// Ok wraps a similarity value.
func Ok(v float64) Outcome {
	return Outcome{Value: v, OK: true}
}

// Unavailable records why a backend produced no value.
func Unavailable(reason error) Outcome {
	return Outcome{Reason: reason}
}

// Reasons an embedding backend reports Unavailable.
var (
	ErrEmbeddingDisabled = errors.New("embedding backend disabled")
	ErrNoEmbedder        = errors.New("no embedding model configured")
	ErrEmptyCleanText    = errors.New("text is empty after cleaning")
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
)

// EmbeddingBackend scores similarity as the cosine of sentence embeddings of
// the cleaned resume and job texts.
type EmbeddingBackend struct {
	embedder  Embedder
	enabled   bool
	stopwords textclean.Stopwords

	// mu serialises calls to embedders that are not reentrant.
	mu sync.Mutex
}

// NewEmbeddingBackend returns a backend using embedder. A nil embedder or
// enabled=false makes every call Unavailable.
func NewEmbeddingBackend(embedder Embedder, enabled bool, stopwords textclean.Stopwords) *EmbeddingBackend {
	return &EmbeddingBackend{
		embedder:  embedder,
		enabled:   enabled,
		stopwords: stopwords,
	}
}

// Available reports whether the backend is switched on and has a model.
func (b *EmbeddingBackend) Available() bool {
	return b != nil && b.enabled && b.embedder != nil
}

// ModelName returns the embedder's model name, or "" when unavailable.
func (b *EmbeddingBackend) ModelName() string {
	if !b.Available() {
		return ""
	}
	return b.embedder.ModelName()
}

// Similarity embeds both texts and returns their cosine similarity clamped to [0, 1].
func (b *EmbeddingBackend) Similarity(ctx context.Context, resume, job string) Outcome {
	if b == nil || !b.enabled {
		return Unavailable(ErrEmbeddingDisabled)
	}
	if b.embedder == nil {
		return Unavailable(ErrNoEmbedder)
	}

	resumeClean := textclean.CleanText(resume, b.stopwords)
	jobClean := textclean.CleanText(job, b.stopwords)
	if resumeClean == "" || jobClean == "" {
		return Unavailable(ErrEmptyCleanText)
	}

	resumeVec, err := b.embed(ctx, resumeClean)
	if err != nil {
		return Unavailable(fmt.Errorf("embedding resume: %w", err))
	}
	jobVec, err := b.embed(ctx, jobClean)
	if err != nil {
		return Unavailable(fmt.Errorf("embedding job description: %w", err))
	}
	if len(resumeVec) != len(jobVec) || len(resumeVec) == 0 {
		return Unavailable(ErrDimensionMismatch)
	}

	return Ok(clamp01(cosine(resumeVec, jobVec)))
}

func (b *EmbeddingBackend) embed(ctx context.Context, text string) (vec []float32, err error) {
	if !b.embedder.Reentrant() {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("embedder panicked: %v", r)
		}
	}()
	return b.embedder.Embed(ctx, text)
}
