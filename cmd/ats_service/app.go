package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/config"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/fetch"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/llm"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/logger"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/pipeline"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/textclean"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// app bundles what every command builds from configuration.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	pipeline *pipeline.Pipeline
	embedder *llm.GeminiEmbedder
}

// loadApp reads configuration and builds the logger and scoring pipeline.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(appViper, cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	a.pipeline, a.embedder = buildPipeline(ctx, cfg, log)
	return a, nil
}

// buildPipeline turns configuration into the pipeline's explicit context.
// The embedding model is only constructed when enabled and keyed; failures
// are logged and leave TF-IDF as the only backend.
func buildPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pipeline.Pipeline, *llm.GeminiEmbedder) {
	pcfg := pipeline.Config{
		Stopwords: textclean.English(),
		Logger:    log,
	}

	var embedder *llm.GeminiEmbedder
	if cfg.Similarity.EmbeddingEnabled {
		e, err := llm.NewGeminiEmbedder(ctx, llm.DefaultConfig().WithModel(cfg.Similarity.EmbeddingModel), cfg.Similarity.APIKey)
		if err != nil {
			log.Warn("embedding model unavailable, using tf-idf only", zap.Error(err))
		} else {
			embedder = e
			pcfg.Embedder = e
			pcfg.EmbeddingEnabled = true
		}
	}

	p := pipeline.New(pcfg)
	info := p.ModelInfo()
	backend := types.BackendTFIDF
	if info.SBERTEnabled {
		backend = types.BackendEmbedding
	}
	log.Debug("pipeline ready", logger.SimilarityFields(string(backend), info.ModelName)...)
	return p, embedder
}

// newFetcher builds the cached job-posting fetcher.
func (a *app) newFetcher() *fetch.CachedFetcher {
	opts := fetch.DefaultOptions()
	opts.Timeout = a.cfg.Fetch.Timeout
	opts.UseBrowser = a.cfg.Fetch.UseBrowser
	opts.Logger = a.log
	return fetch.NewCachedFetcher(opts, a.cfg.Fetch.CacheTTL)
}

// Close releases the embedding client and flushes logs.
func (a *app) Close() {
	if a.embedder != nil {
		if err := a.embedder.Close(); err != nil {
			a.log.Warn("failed to close embedding client", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
