// Package validation detects layout and encoding problems in extracted resume text
// that commonly break applicant tracking parsers.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxLineChars is the longest line, in characters, a single-column resume
	// normally produces. Longer lines usually mean a table or a multi-column
	// layout was flattened during extraction.
	MaxLineChars = 200

	// MaxSpecialCharRatio is the largest share of non-space characters that may
	// be symbols before the text is flagged.
	MaxSpecialCharRatio = 0.10

	// minSpecialCharSample avoids flagging very short texts such as a lone "C++".
	minSpecialCharSample = 20
)

// Risk labels returned by DetectFormattingRisks.
const (
	RiskSpecialCharacters = "Excessive special characters (symbols, icons or decorative bullets)"
	RiskLongLines         = "Unusually long lines (possible tables or multi-column layout)"
	RiskUnreadable        = "Unreadable characters (possible font or encoding issue)"
)

type riskCheck struct {
	label  string
	detect func(text string) bool
}

var riskChecks = []riskCheck{
	{label: RiskSpecialCharacters, detect: hasExcessiveSpecialChars},
	{label: RiskLongLines, detect: hasLongLines},
	{label: RiskUnreadable, detect: hasUnreadableChars},
}

// DetectFormattingRisks returns one short label per formatting risk found in
// text, in a fixed order. An empty result means no risk was detected.
func DetectFormattingRisks(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var risks []string
	for _, check := range riskChecks {
		if check.detect(text) {
			risks = append(risks, check.label)
		}
	}
	return risks
}

func hasExcessiveSpecialChars(text string) bool {
	var total, special int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !isCommonPunct(r) {
			special++
		}
	}
	if total < minSpecialCharSample {
		return false
	}
	return float64(special)/float64(total) > MaxSpecialCharRatio
}

// isCommonPunct covers punctuation that ordinary prose, emails, dates and
// phone numbers use, plus plain list bullets.
func isCommonPunct(r rune) bool {
	return strings.ContainsRune(".,;:'\"()-/@+&•·", r)
}

func hasLongLines(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(strings.TrimSpace(line)) > MaxLineChars {
			return true
		}
	}
	return false
}

func hasUnreadableChars(text string) bool {
	for _, r := range text {
		if r == utf8.RuneError || unicode.Is(unicode.Co, r) {
			return true
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
	}
	return false
}
