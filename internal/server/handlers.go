package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/ingestion"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/logger"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server/middleware"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// Multipart field names accepted by POST /parse.
const (
	formFile           = "file"
	formJobDescription = "job_description"
	formJobURL         = "job_url"
)

// handleParse scores an uploaded resume file. Any file name and content is
// accepted; extraction problems are reported in parsingErrors with status 200.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, r, s.bodyError(err, formFile, "multipart form body is required"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(formFile)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: formFile, Message: "required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, s.bodyError(err, formFile, "unreadable upload"))
		return
	}

	job, err := s.resolveJobDescription(r.Context(), r.FormValue(formJobDescription), r.FormValue(formJobURL))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := s.pipeline.ScoreFile(r.Context(), data, header.Filename, job)
	s.requestLogger(r).Info("scored upload",
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(data)),
		zap.Float64("score", result.ATSScore),
		zap.Int("parsing_errors", len(result.ParsingErrors)))

	s.jsonResponse(w, http.StatusOK, result)
}

// handleScoreText scores resume text sent as JSON.
func (s *Server) handleScoreText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req types.ScoreTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, s.bodyError(err, "body", "invalid JSON: "+err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, types.ValidationMessage(err))
		return
	}

	job, err := s.resolveJobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := s.pipeline.ScoreText(r.Context(), req.ResumeText, job)
	s.requestLogger(r).Info("scored text",
		zap.Int("chars", len(req.ResumeText)),
		zap.Float64("score", result.ATSScore))

	s.jsonResponse(w, http.StatusOK, result)
}

// resolveJobDescription returns the job text, fetching it when only a URL is given.
func (s *Server) resolveJobDescription(ctx context.Context, description, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return description, nil
	}
	if strings.TrimSpace(description) != "" {
		return "", &ErrValidation{Field: formJobURL, Message: "cannot be combined with job_description"}
	}
	if s.fetcher == nil {
		return "", &ErrValidation{Field: formJobURL, Message: "fetching job postings is disabled"}
	}

	result, cached, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", &ErrJobFetch{URL: url, Cause: err}
	}
	s.logger.Debug("resolved job description",
		zap.String("url", url),
		zap.Bool("cached", cached),
		zap.String("preview", logger.TruncateForLog(result.Text, 80)))
	return ingestion.CleanText(result.Text), nil
}

// bodyError maps request-body read failures to client errors.
func (s *Server) bodyError(err error, field, message string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrUploadTooLarge{Limit: tooLarge.Limit}
	}
	return &ErrValidation{Field: field, Message: message}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	s.requestLogger(r).Info("request rejected", zap.Int("status", status), zap.Error(err))
	s.errorResponse(w, status, err.Error())
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.WithFields(s.logger, zap.String(logger.FieldRequestID, middleware.GetRequestID(r.Context())))
}
