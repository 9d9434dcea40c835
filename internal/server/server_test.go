package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/config"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/fetch"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/pipeline"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server/ratelimit"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/textclean"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

const resumeText = `Jane Doe
jane.doe@example.com | +1 555 123 4567

EDUCATION
BS Computer Science

EXPERIENCE
Backend engineer building Go services

SKILLS
Go, Python, Kubernetes`

type fakeFetcher struct {
	text  string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetch.Result, bool, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, false, f.err
	}
	return &fetch.Result{URL: url, Text: f.text}, false, nil
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		MaxUploadMB:  1,
		CORSOrigins:  []string{"*"},
	}
}

func newTestServer(t *testing.T, fetcher JobFetcher, limits *ratelimit.Config) *Server {
	t.Helper()
	if limits == nil {
		limits = ratelimit.NewConfig(false, 0, 0)
	}
	opts := Options{
		Config:    testServerConfig(),
		RateLimit: limits,
		Pipeline:  pipeline.New(pipeline.Config{Stopwords: textclean.English()}),
	}
	if fetcher != nil {
		opts.Fetcher = fetcher
	}
	s, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile(formFile, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) types.Result {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res types.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestNew_RequiresPipeline(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestModelInfoEndpoint(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/model-info", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sbert_enabled":false,"model_name":"TF-IDF"}`, w.Body.String())
}

func TestParse_PlainTextFileIsUnsupported(t *testing.T) {
	s := newTestServer(t, nil, nil)
	body, contentType := multipartBody(t, "resume.txt", []byte(resumeText), nil)
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	res := decodeResult(t, doRequest(s, req))

	assert.Equal(t, []string{"Unsupported file extension"}, res.ParsingErrors)
	assert.Equal(t, 0.0, res.ATSScore)
	assert.Equal(t, -20.0, res.Breakdown.ParsingPenalty)
	assert.Equal(t, types.BackendTFIDF, res.SimilarityMethod)
}

func TestParse_CorruptPDFStillAnswers(t *testing.T) {
	s := newTestServer(t, nil, nil)
	body, contentType := multipartBody(t, "resume.pdf", []byte("not a pdf"), map[string]string{
		formJobDescription: "Go engineer",
	})
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	res := decodeResult(t, doRequest(s, req))

	require.Len(t, res.ParsingErrors, 1)
	assert.True(t, strings.HasPrefix(res.ParsingErrors[0], "PDF parsing error: "), res.ParsingErrors[0])
	assert.Equal(t, 0.0, res.ATSScore)
}

func TestParse_MissingFile(t *testing.T) {
	s := newTestServer(t, nil, nil)
	body, contentType := multipartBody(t, "", nil, map[string]string{formJobDescription: "Go"})
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error: file - required")
}

func TestParse_NotMultipart(t *testing.T) {
	s := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParse_TooLarge(t *testing.T) {
	s := newTestServer(t, nil, nil)
	body, contentType := multipartBody(t, "resume.pdf", bytes.Repeat([]byte("a"), 2<<20), nil)
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParse_JobURL(t *testing.T) {
	fetcher := &fakeFetcher{text: "Go   engineer\r\nKubernetes"}
	s := newTestServer(t, fetcher, nil)
	body, contentType := multipartBody(t, "resume.docx", []byte("junk"), map[string]string{
		formJobURL: "https://jobs.example.com/1",
	})
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	res := decodeResult(t, doRequest(s, req))

	assert.Equal(t, []string{"https://jobs.example.com/1"}, fetcher.calls)
	assert.Contains(t, res.Feedback, "Relevance (TF-IDF) = 0.0")
}

func TestScoreText_JobURL(t *testing.T) {
	fetcher := &fakeFetcher{text: "Go engineer\nKubernetes and Python"}
	s := newTestServer(t, fetcher, nil)
	payload := `{"resume_text":` + mustJSON(t, resumeText) + `,"job_url":"https://jobs.example.com/2"}`

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/score-text", strings.NewReader(payload)))

	want, err := json.Marshal(s.pipeline.ScoreText(context.Background(), resumeText, "Go engineer\nKubernetes and Python"))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())
}

func TestParse_JobURLFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("HTTP status 404")}
	s := newTestServer(t, fetcher, nil)
	body, contentType := multipartBody(t, "resume.pdf", []byte("x"), map[string]string{
		formJobURL: "https://jobs.example.com/missing",
	})
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "HTTP status 404")
}

func TestParse_JobURLWithoutFetcher(t *testing.T) {
	s := newTestServer(t, nil, nil)
	body, contentType := multipartBody(t, "resume.pdf", []byte("x"), map[string]string{
		formJobURL: "https://jobs.example.com/1",
	})
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}

func TestScoreText(t *testing.T) {
	s := newTestServer(t, nil, nil)
	payload := `{"resume_text":` + mustJSON(t, resumeText) + `}`

	res := decodeResult(t, doRequest(s, httptest.NewRequest(http.MethodPost, "/score-text", strings.NewReader(payload))))

	assert.Equal(t, 100.0, res.ATSScore)
	assert.Equal(t, []string{}, res.ParsingErrors)
	assert.Equal(t, []string{"Go", "Python", "Kubernetes"}, res.ParsedSkills)
	require.NotNil(t, res.Contact.Email)
	assert.Equal(t, "jane.doe@example.com", *res.Contact.Email)
}

func TestScoreText_MatchesPipeline(t *testing.T) {
	s := newTestServer(t, nil, nil)
	job := "Senior Go engineer with Kubernetes experience"
	payload := `{"resume_text":` + mustJSON(t, resumeText) + `,"job_description":` + mustJSON(t, job) + `}`

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/score-text", strings.NewReader(payload)))

	want, err := json.Marshal(s.pipeline.ScoreText(context.Background(), resumeText, job))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())
}

func TestScoreText_Invalid(t *testing.T) {
	s := newTestServer(t, nil, nil)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed", body: `{"resume_text":`, wantMsg: "invalid JSON"},
		{name: "missing text", body: `{"job_description":"Go"}`, wantMsg: "validation error: ResumeText - required"},
		{name: "bad url", body: `{"resume_text":"x","job_url":"notaurl"}`, wantMsg: "validation error: JobURL - http_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(s, httptest.NewRequest(http.MethodPost, "/score-text", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, nil, ratelimit.NewConfig(true, 60, 2))
	payload := `{"resume_text":"Jane"}`

	for i := 0; i < 2; i++ {
		w := doRequest(s, httptest.NewRequest(http.MethodPost, "/score-text", strings.NewReader(payload)))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "60", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/score-text", strings.NewReader(payload)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	w = doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, nil, nil)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
