package relevance

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// Scorer picks a similarity backend per call. The embedding backend is tried
// first when available; TF-IDF is used whenever it reports Unavailable.
type Scorer struct {
	tfidf     *TFIDF
	embedding *EmbeddingBackend
	logger    *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithEmbedding enables the embedding backend.
func WithEmbedding(b *EmbeddingBackend) Option {
	return func(s *Scorer) { s.embedding = b }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScorer returns a Scorer backed by tfidf and any configured options.
func NewScorer(tfidf *TFIDF, opts ...Option) *Scorer {
	s := &Scorer{tfidf: tfidf, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EmbeddingEnabled reports whether the embedding backend will be attempted.
func (s *Scorer) EmbeddingEnabled() bool {
	return s.embedding.Available()
}

// ModelInfo describes the configured similarity model.
func (s *Scorer) ModelInfo() types.ModelInfo {
	if !s.EmbeddingEnabled() {
		return types.ModelInfo{SBERTEnabled: false, ModelName: string(types.BackendTFIDF)}
	}
	return types.ModelInfo{SBERTEnabled: true, ModelName: s.embedding.ModelName()}
}

// Compute returns the relevance of resume to job in [0, 1] and the backend
// that produced it. It never fails.
func (s *Scorer) Compute(ctx context.Context, resume, job string) (float64, types.Backend) {
	if s.embedding != nil {
		outcome := s.embedding.Similarity(ctx, resume, job)
		if outcome.OK {
			return outcome.Value, types.BackendEmbedding
		}
		if s.embedding.Available() {
			s.logger.Warn("embedding backend unavailable, using tf-idf",
				zap.Error(outcome.Reason))
		}
	}
	return s.tfidf.Similarity(resume, job), types.BackendTFIDF
}
