// Package mcptool exposes resume scoring as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/pipeline"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "ats_service"

// MetadataScoreResume describes the score_resume tool.
var MetadataScoreResume = &mcp.Tool{
	Name: "score_resume",
	Description: "Score a plain-text resume for applicant tracking system readiness. " +
		"Returns a 0-100 score, a breakdown of structural points and job relevance, " +
		"ordered feedback lines, extracted skills and contact details. " +
		"Supplying job_description adds a relevance component.",
	Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
}

// InputScoreResume is the input for the score_resume tool.
type InputScoreResume struct {
	ResumeText     string `json:"resume_text" jsonschema:"plain text of the resume"`
	JobDescription string `json:"job_description,omitempty" jsonschema:"optional job description to measure relevance against"`
}

// ScoreResume returns the score_resume handler bound to p.
func ScoreResume(p *pipeline.Pipeline) mcp.ToolHandlerFor[InputScoreResume, types.Result] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputScoreResume) (*mcp.CallToolResult, types.Result, error) {
		if strings.TrimSpace(input.ResumeText) == "" {
			return nil, types.Result{}, fmt.Errorf("resume_text is required")
		}
		return nil, *p.ScoreText(ctx, input.ResumeText, input.JobDescription), nil
	}
}

// NewServer returns an MCP server with every tool registered.
func NewServer(p *pipeline.Pipeline, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)
	RegisterTools(server, p)
	return server
}

// RegisterTools registers the scoring tools on server.
func RegisterTools(server *mcp.Server, p *pipeline.Pipeline) {
	mcp.AddTool(server, MetadataScoreResume, ScoreResume(p))
}

// RunStdio serves the tools over stdin/stdout until ctx is done or the client disconnects.
func RunStdio(ctx context.Context, p *pipeline.Pipeline, version string) error {
	return NewServer(p, version).Run(ctx, &mcp.StdioTransport{})
}
