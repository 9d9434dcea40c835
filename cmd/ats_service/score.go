package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/ingestion"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/observability"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/pipeline"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/schemas"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume>...",
	Short: "Score resume files",
	Long: "Scores PDF and DOCX resumes, optionally against a job description read from a file " +
		"(--job, \"-\" for stdin) or fetched from a URL (--job-url). Files are scored concurrently.",
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

var (
	scoreJob         string
	scoreJobURL      string
	scoreFormat      string
	scoreValidate    bool
	scoreConcurrency int
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreJob, "job", "", "Path to job description text file (\"-\" for stdin)")
	scoreCmd.Flags().StringVar(&scoreJobURL, "job-url", "", "URL of a job posting to score against")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", formatJSON, "Output format: json, yaml or text")
	scoreCmd.Flags().BoolVar(&scoreValidate, "validate", false, "Validate every result against the result JSON schema")
	scoreCmd.Flags().IntVarP(&scoreConcurrency, "concurrency", "c", pipeline.DefaultConcurrency, "Files scored in parallel")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print pipeline progress to stderr")
	scoreCmd.MarkFlagsMutuallyExclusive("job", "job-url")

	rootCmd.AddCommand(scoreCmd)
}

// scoreOptions is the parsed form of the score flags.
type scoreOptions struct {
	Paths       []string
	Job         string
	Format      string
	Validate    bool
	Concurrency int
	Progress    io.Writer
}

func runScore(cmd *cobra.Command, args []string) error {
	switch scoreFormat {
	case formatJSON, formatYAML, formatText:
	default:
		return fmt.Errorf("unsupported format %q (want json, yaml or text)", scoreFormat)
	}

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	job, err := loadJob(cmd.Context(), a)
	if err != nil {
		return err
	}

	opts := scoreOptions{
		Paths:       args,
		Job:         job,
		Format:      scoreFormat,
		Validate:    scoreValidate,
		Concurrency: scoreConcurrency,
	}
	if scoreVerbose {
		opts.Progress = cmd.ErrOrStderr()
	}
	return scoreFiles(cmd.Context(), a.pipeline, opts, cmd.OutOrStdout())
}

func loadJob(ctx context.Context, a *app) (string, error) {
	switch {
	case scoreJob != "":
		return ingestion.LoadJobDescription(scoreJob)
	case scoreJobURL != "":
		result, _, err := a.newFetcher().Fetch(ctx, scoreJobURL)
		if err != nil {
			return "", &server.ErrJobFetch{URL: scoreJobURL, Cause: err}
		}
		return ingestion.CleanText(result.Text), nil
	default:
		return "", nil
	}
}

// scoreFiles scores opts.Paths and writes the results to out.
func scoreFiles(ctx context.Context, p *pipeline.Pipeline, opts scoreOptions, out io.Writer) error {
	var onProgress pipeline.FileProgressCallback
	if opts.Progress != nil {
		var mu sync.Mutex
		printer := observability.NewPrinter(opts.Progress)
		onProgress = func(path string, e pipeline.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			printer.PrintStep(e.Step, path+": "+e.Message)
		}
	}

	results, err := p.ScoreFilesWithProgress(ctx, opts.Paths, opts.Job, opts.Concurrency, onProgress)
	if err != nil {
		return err
	}

	if opts.Validate {
		for _, r := range results {
			if err := schemas.ValidateResult(r.Result); err != nil {
				return fmt.Errorf("result for %s does not match schema: %w", r.Path, err)
			}
		}
	}

	return writeResults(out, opts.Format, results)
}

func writeResults(out io.Writer, format string, results []pipeline.FileResult) error {
	switch format {
	case formatText:
		printer := observability.NewPrinter(out)
		for _, r := range results {
			printer.PrintResult(r.Path, r.Result)
		}
		return nil

	case formatYAML:
		var v any = results
		if len(results) == 1 {
			v = results[0].Result
		}
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = out.Write(data)
		return err

	default:
		var v any = results
		if len(results) == 1 {
			v = results[0].Result
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
