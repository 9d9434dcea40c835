// Package ingestion turns uploaded resume files and job description sources into plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// ErrUnsupportedExtension is reported for files that are neither PDF nor Word documents.
const ErrUnsupportedExtension = "Unsupported file extension"

var (
	xmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
	blankRunPattern = regexp.MustCompile(`[ \t\f\v]+`)
)

// ExtractText decodes a resume file into plain text. The file type is chosen
// by the case-insensitive extension of filename. It never fails: decoding
// problems are returned as messages alongside whatever text was salvaged.
func ExtractText(data []byte, filename string) (text string, errs []string) {
	errs = []string{}
	defer func() {
		if r := recover(); r != nil {
			text = ""
			errs = append(errs, fmt.Sprintf("Unexpected parsing error: %v", r))
		}
	}()

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		out, err := extractPDF(data)
		if err != nil {
			return "", append(errs, "PDF parsing error: "+err.Error())
		}
		return out, errs

	case strings.HasSuffix(lower, ".docx"), strings.HasSuffix(lower, ".doc"):
		out, err := extractDOCX(data)
		if err != nil {
			return "", append(errs, "DOCX parsing error: "+err.Error())
		}
		return out, errs

	default:
		return "", append(errs, ErrUnsupportedExtension)
	}
}

// ExtractDocument is ExtractText returning a RawDocument.
func ExtractDocument(data []byte, filename string) types.RawDocument {
	text, errs := ExtractText(data, filename)
	return types.RawDocument{Text: text, ParsingErrors: errs}
}

func extractPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ExtractError{Format: "pdf", Message: "empty file"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Format: "pdf", Message: "failed to open document", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractError{Format: "pdf", Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		sb.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ExtractError{Format: "docx", Message: "empty file"}
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Format: "docx", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText keeps one line per paragraph and drops all markup.
func docxXMLToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	text := html.UnescapeString(xmlTagPattern.ReplaceAllString(xml, ""))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(blankRunPattern.ReplaceAllString(line, " "))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
