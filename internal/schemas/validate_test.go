package schemas

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/pipeline"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/textclean"
)

const resumeText = `Jane Doe
jane.doe@example.com | +1 555 123 4567

EDUCATION
BS Computer Science

EXPERIENCE
Backend Engineer building Go services

SKILLS
Go, Python, Kubernetes`

func TestResultSchema_Compiles(t *testing.T) {
	_, err := compiledResultSchema()
	require.NoError(t, err)
	assert.Contains(t, ResultSchema(), "similarity_method")
}

func TestValidateResult_PipelineOutputs(t *testing.T) {
	p := pipeline.New(pipeline.Config{Stopwords: textclean.English()})
	ctx := context.Background()

	cases := map[string]any{
		"full resume":           p.ScoreText(ctx, resumeText, ""),
		"with job description":  p.ScoreText(ctx, resumeText, "Go engineer with Kubernetes"),
		"empty text":            p.ScoreText(ctx, "", ""),
		"unsupported extension": p.ScoreFile(ctx, nil, "resume.xyz", ""),
	}
	for name, res := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateResult(res))
		})
	}
}

func TestValidateResultJSON_Invalid(t *testing.T) {
	p := pipeline.New(pipeline.Config{Stopwords: textclean.English()})
	data, err := json.Marshal(p.ScoreText(context.Background(), resumeText, ""))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["atsScore"] = 120
	doc["similarity_method"] = "BM25"
	breakdown := doc["breakdown"].(map[string]any)
	breakdown["education"] = 7
	delete(doc, "model_info")

	bad, err := json.Marshal(doc)
	require.NoError(t, err)

	err = ValidateResultJSON(bad)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "atsScore")
	assert.Contains(t, fields, "similarity_method")
	assert.Contains(t, fields, "breakdown.education")
	assert.Contains(t, fields, "(root)")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateResultJSON_Malformed(t *testing.T) {
	err := ValidateResultJSON([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load document")
}

func TestValidateResultFile(t *testing.T) {
	dir := t.TempDir()
	p := pipeline.New(pipeline.Config{Stopwords: textclean.English()})
	data, err := json.MarshalIndent(p.ScoreText(context.Background(), resumeText, ""), "", "  ")
	require.NoError(t, err)

	path := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	assert.NoError(t, ValidateResultFile(path))

	err = ValidateResultFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"ok"}`))

	err := ValidateJSONString(schema, `{"name":42}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}
