// Package pipeline provides the high-level orchestration for scoring a resume.
package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/ingestion"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/parsing"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/relevance"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/scoring"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/skills"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/textclean"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// ProgressEvent represents a progress update during a scoring run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called as each pipeline step completes
type ProgressCallback func(event ProgressEvent)

// Pipeline step names reported through ProgressCallback.
const (
	StepSections  = "sections"
	StepContact   = "contact"
	StepSkills    = "skills"
	StepHeuristic = "heuristics"
	StepRelevance = "relevance"
	StepFeedback  = "feedback"
)

// Config is built once at startup and shared by every scoring run.
type Config struct {
	// Stopwords are removed before similarity scoring.
	Stopwords textclean.Stopwords
	// Embedder is the optional sentence-embedding model. Nil disables it.
	Embedder relevance.Embedder
	// EmbeddingEnabled switches the embedding backend on when Embedder is set.
	EmbeddingEnabled bool
	// RiskDetector overrides the formatting-risk detector, mainly for tests.
	RiskDetector scoring.RiskDetector
	Logger       *zap.Logger
}

// Pipeline scores resumes. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	cfg    Config
	scorer *relevance.Scorer
	logger *zap.Logger
}

// New builds a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []relevance.Option{relevance.WithLogger(logger)}
	if cfg.Embedder != nil {
		opts = append(opts, relevance.WithEmbedding(
			relevance.NewEmbeddingBackend(cfg.Embedder, cfg.EmbeddingEnabled, cfg.Stopwords)))
	}

	return &Pipeline{
		cfg:    cfg,
		scorer: relevance.NewScorer(relevance.NewTFIDF(cfg.Stopwords), opts...),
		logger: logger,
	}
}

// ModelInfo describes the similarity model the pipeline will try first.
func (p *Pipeline) ModelInfo() types.ModelInfo {
	return p.scorer.ModelInfo()
}

// Input is one scoring request.
type Input struct {
	Document types.RawDocument
	// JobDescription is optional; blank text means no relevance scoring.
	JobDescription string
	OnProgress     ProgressCallback
}

// ScoreFile extracts text from an uploaded file and scores it.
func (p *Pipeline) ScoreFile(ctx context.Context, data []byte, filename, jobDescription string) *types.Result {
	return p.Score(ctx, Input{
		Document:       ingestion.ExtractDocument(data, filename),
		JobDescription: jobDescription,
	})
}

// ScoreText scores resume text that needs no extraction.
func (p *Pipeline) ScoreText(ctx context.Context, resumeText, jobDescription string) *types.Result {
	return p.Score(ctx, Input{
		Document:       types.RawDocument{Text: resumeText},
		JobDescription: jobDescription,
	})
}

// Score runs every step over in and returns a complete result. It never
// fails: decoding problems already recorded in in.Document.ParsingErrors only
// lower the score.
func (p *Pipeline) Score(ctx context.Context, in Input) *types.Result {
	start := time.Now()
	emit := func(step, msg string) {
		if in.OnProgress != nil {
			in.OnProgress(ProgressEvent{Step: step, Message: msg})
		}
	}

	text := in.Document.Text
	parsingErrors := append([]string{}, in.Document.ParsingErrors...)

	sections := parsing.LocateSections(text)
	emit(StepSections, "located resume sections")

	contact := parsing.ExtractContact(text)
	emit(StepContact, "extracted contact details")

	parsedSkills := skills.Deduplicate(skills.ExtractFromSection(sections.Skills))
	emit(StepSkills, "extracted skills")

	heuristics := scoring.ComputeHeuristics(text, sections, parsingErrors, p.cfg.RiskDetector)
	emit(StepHeuristic, "computed structural score")

	var (
		relevanceValue *float64
		backend        = types.BackendTFIDF
	)
	// A whitespace-only job description counts as absent.
	if strings.TrimSpace(in.JobDescription) != "" {
		value, used := p.scorer.Compute(ctx, text, in.JobDescription)
		relevanceValue = &value
		backend = used
		emit(StepRelevance, "computed relevance with "+string(used))
	}

	totals := scoring.NormalizeScore(heuristics.Score, relevanceValue)
	breakdown := heuristics.Breakdown.WithTotals(totals.Heuristics, totals.Relevance)

	items := scoring.SynthesizeFeedback(scoring.FeedbackInput{
		Structural: heuristics.Feedback,
		Relevance:  relevanceValue,
		Backend:    backend,
		Sections:   sections,
		Contact:    contact,
		Breakdown:  breakdown,
	})
	emit(StepFeedback, "synthesized feedback")

	p.logger.Debug("scored resume",
		zap.Float64("score", totals.Total),
		zap.String("backend", string(backend)),
		zap.Bool("job_description", relevanceValue != nil),
		zap.Int("parsing_errors", len(parsingErrors)),
		zap.Duration("elapsed", time.Since(start)))

	return &types.Result{
		RawText:       text,
		ParsedSkills:  parsedSkills,
		ParsingErrors: parsingErrors,
		ATSScore:      totals.Total,
		Breakdown:     breakdown,
		Feedback:      scoring.RenderFeedback(items),
		FeedbackItems: items,
		Contact:       contact,
		Sections: types.ParsedSections{
			Education:  sections.Education,
			Experience: sections.Experience,
			Skills:     parsedSkills,
		},
		SimilarityMethod: backend,
		ModelInfo:        p.ModelInfo(),
	}
}
