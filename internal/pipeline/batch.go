package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/ingestion"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// DefaultConcurrency is the number of files scored at once by ScoreFiles.
const DefaultConcurrency = 4

// FileResult pairs a scored file with its result.
type FileResult struct {
	Path   string        `json:"path" yaml:"path"`
	Result *types.Result `json:"result" yaml:"result"`
}

// FileProgressCallback receives the progress events of one file in a batch.
// It may be called from several goroutines at once.
type FileProgressCallback func(path string, event ProgressEvent)

// ScoreFiles scores each file against the same job description, running up
// to concurrency pipelines at once. Results keep the order of paths. Only
// failures to read a file are returned as errors; undecodable content is
// reported in the result's parsing errors.
func (p *Pipeline) ScoreFiles(ctx context.Context, paths []string, jobDescription string, concurrency int) ([]FileResult, error) {
	return p.ScoreFilesWithProgress(ctx, paths, jobDescription, concurrency, nil)
}

// ScoreFilesWithProgress is ScoreFiles reporting each file's pipeline steps to onProgress.
func (p *Pipeline) ScoreFilesWithProgress(ctx context.Context, paths []string, jobDescription string, concurrency int, onProgress FileProgressCallback) ([]FileResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]FileResult, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			in := Input{
				Document:       ingestion.ExtractDocument(data, filepath.Base(path)),
				JobDescription: jobDescription,
			}
			if onProgress != nil {
				in.OnProgress = func(e ProgressEvent) { onProgress(path, e) }
			}
			results[i] = FileResult{Path: path, Result: p.Score(gCtx, in)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
