package ingestion

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// MaxJobDescriptionBytes bounds job descriptions read from files or stdin.
const MaxJobDescriptionBytes = 1 << 20

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	innerSpaceRun    = regexp.MustCompile(`[ \t]+`)
)

// CleanText tidies job description text while keeping its line structure:
// line endings become LF, runs of spaces collapse, trailing spaces go and at
// most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpaceRun.ReplaceAllString(line, " "))
	}

	content = strings.Join(lines, "\n")
	content = excessBlankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// ReadJobDescription reads and cleans a job description from r.
func ReadJobDescription(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxJobDescriptionBytes+1))
	if err != nil {
		return "", &ExtractError{Format: "text", Message: "failed to read job description", Cause: err}
	}
	if len(data) > MaxJobDescriptionBytes {
		return "", &ExtractError{Format: "text", Message: fmt.Sprintf("job description exceeds %d bytes", MaxJobDescriptionBytes)}
	}
	return CleanText(string(data)), nil
}

// LoadJobDescription reads a job description from path; "-" means stdin.
func LoadJobDescription(path string) (string, error) {
	if path == "-" {
		return ReadJobDescription(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("job description not found: %w", err)
		}
		return "", fmt.Errorf("failed to open job description: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadJobDescription(f)
}
