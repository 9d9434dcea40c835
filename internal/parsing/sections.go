// Package parsing locates resume sections and contact details in extracted plain text.
package parsing

import (
	"regexp"
	"strings"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// Default header names for each section. Matching is a case-insensitive
// prefix test against the trimmed line.
var (
	EducationHeaders  = []string{"education", "academic", "qualifications"}
	ExperienceHeaders = []string{"experience", "work experience", "professional experience", "employment"}
	SkillsHeaders     = []string{"skills", "technical skills", "core competencies"}
)

// unicodeSpace is a character-class body matching every Unicode whitespace
// rune. Go's \s alone covers ASCII only.
const unicodeSpace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

// headerLinePattern matches an all-caps heading such as "WORK HISTORY".
var headerLinePattern = regexp.MustCompile(`^[A-Z` + unicodeSpace + `]{3,}$`)

// lineBreaks maps every line boundary a universal line splitter recognises to '\n'.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

func splitLines(text string) []string {
	text = lineBreaks.Replace(text)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// isHeaderLine reports whether a trimmed line looks like the start of another section.
func isHeaderLine(trimmed string) bool {
	return headerLinePattern.MatchString(trimmed) || strings.HasSuffix(trimmed, ":")
}

// FindSection returns the body of the first section whose header line starts
// with one of names. The body runs until the first blank line after content
// or the next header-looking line. It returns nil when no header is found or
// the section has no body.
func FindSection(text string, names []string) *string {
	lines := splitLines(text)

	start := -1
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if matchesHeader(lower, names) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var body []string
	for _, line := range lines[start+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(body) > 0 {
				break
			}
			continue
		}
		if isHeaderLine(trimmed) {
			break
		}
		body = append(body, trimmed)
	}
	if len(body) == 0 {
		return nil
	}

	section := strings.TrimSpace(strings.Join(body, "\n"))
	return &section
}

func matchesHeader(lowerLine string, names []string) bool {
	for _, name := range names {
		if strings.HasPrefix(lowerLine, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// LocateSections finds the education, experience and skills sections using
// the default header names.
func LocateSections(text string) types.SectionMap {
	return types.SectionMap{
		Education:  FindSection(text, EducationHeaders),
		Experience: FindSection(text, ExperienceHeaders),
		Skills:     FindSection(text, SkillsHeaders),
	}
}
