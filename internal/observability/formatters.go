// Package observability provides formatted output utilities for the CLI's text and verbose modes.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text and verbose modes
type Printer struct {
	out io.Writer
	// MaxSkills caps the skills listed in the skills box. Zero shows all.
	MaxSkills int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, MaxSkills: maxItemsToShow * 4}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, part := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs the score, breakdown, feedback and skills of a result.
func (p *Printer) PrintResult(name string, result *types.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("File:       %s\n", name))
	}
	sb.WriteString(fmt.Sprintf("ATS score:  %.2f / 100\n", result.ATSScore))
	sb.WriteString(fmt.Sprintf("Similarity: %s (%s)", result.SimilarityMethod, result.ModelInfo.ModelName))
	if len(result.ParsingErrors) > 0 {
		sb.WriteString("\n\nParsing errors:")
		for _, e := range result.ParsingErrors {
			sb.WriteString("\n  • " + e)
		}
	}
	p.printBox("ATS SCORE", sb.String())

	p.PrintBreakdown(result.Breakdown)
	p.PrintFeedback(result.Feedback)
	p.PrintSkills(result.ParsedSkills)
}

// PrintBreakdown outputs the score breakdown, one component per line.
func (p *Printer) PrintBreakdown(b types.Breakdown) {
	var sb strings.Builder
	for i, entry := range b.Entries() {
		if i > 0 {
			sb.WriteString("\n")
		}
		value := strconv.FormatFloat(entry.Value, 'f', 2, 64)
		if entry.Points {
			value = strconv.FormatFloat(entry.Value, 'f', 0, 64)
		}
		sb.WriteString(fmt.Sprintf("%-18s %8s", entry.Key, value))
	}
	p.printBox("SCORE BREAKDOWN", sb.String())
}

// PrintFeedback outputs every feedback line.
func (p *Printer) PrintFeedback(feedback []string) {
	if len(feedback) == 0 {
		return
	}
	lines := make([]string, len(feedback))
	for i, line := range feedback {
		lines[i] = "• " + line
	}
	p.printBox("FEEDBACK", strings.Join(lines, "\n"))
}

// PrintSkills outputs the extracted skills, truncated to MaxSkills.
func (p *Printer) PrintSkills(skills []string) {
	if len(skills) == 0 {
		p.printBox("SKILLS", "No skills extracted")
		return
	}

	shown := skills
	if p.MaxSkills > 0 && len(shown) > p.MaxSkills {
		shown = shown[:p.MaxSkills]
	}
	content := fmt.Sprintf("Extracted %d skills:\n\n%s", len(skills), strings.Join(shown, ", "))
	if len(shown) < len(skills) {
		content += fmt.Sprintf("\n... and %d more", len(skills)-len(shown))
	}
	p.printBox("SKILLS", content)
}

// PrintStep outputs a one-line progress marker for verbose mode.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "  ✓ %-11s %s\n", step, message)
}

// pad right-pads s with spaces to the inner box width.
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= boxWidth-4 {
		return s
	}
	return s + strings.Repeat(" ", boxWidth-4-n)
}

// wrap splits line into chunks of at most width runes, breaking on spaces
// where possible.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var out []string
	var current []rune
	for _, word := range strings.Split(line, " ") {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				out = append(out, string(current))
				current = nil
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			out = append(out, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}
