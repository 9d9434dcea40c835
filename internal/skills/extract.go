// Package skills extracts and deduplicates skill and keyword lists from resume text.
package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Bounds on the length, in characters, of a skill list entry.
const (
	MinSkillLength = 2
	MaxSkillLength = 60
)

// Default bounds for ExtractKeywords.
const (
	DefaultMinKeywordLength = 3
	DefaultMaxKeywordLength = 30
)

var (
	// skillSeparators splits "Go, Python; Docker" and bulleted lists.
	skillSeparators = regexp.MustCompile(`[\n,;•]+`)
	// keywordPattern keeps dots and hyphens so "React.js" and "CI-CD" survive.
	keywordPattern = regexp.MustCompile(`[\p{L}\p{N}_.\-]+`)
	// whitespaceRun matches any run of Unicode whitespace, NBSP included.
	whitespaceRun = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)
)

// ExtractFromSection splits a skills section into entries. Entries shorter
// than MinSkillLength or longer than MaxSkillLength are dropped. A nil or empty
// section yields an empty list.
func ExtractFromSection(section *string) []string {
	if section == nil || *section == "" {
		return []string{}
	}

	skills := []string{}
	for _, token := range skillSeparators.Split(*section, -1) {
		s := strings.TrimSpace(token)
		if n := utf8.RuneCountInString(s); n >= MinSkillLength && n <= MaxSkillLength {
			skills = append(skills, s)
		}
	}
	return skills
}

// ExtractKeywords returns the word-like tokens of text whose length lies in
// [minLen, maxLen], in document order.
func ExtractKeywords(text string, minLen, maxLen int) []string {
	if text == "" {
		return []string{}
	}

	keywords := []string{}
	for _, word := range keywordPattern.FindAllString(text, -1) {
		if n := utf8.RuneCountInString(word); n >= minLen && n <= maxLen {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// Normalize returns the comparison key for a skill: lowercased, trimmed and
// with internal whitespace collapsed. It is never used for display.
func Normalize(skill string) string {
	if skill == "" {
		return ""
	}
	normalized := strings.TrimSpace(strings.ToLower(skill))
	return whitespaceRun.ReplaceAllString(normalized, " ")
}

// Deduplicate keeps the first occurrence of each skill by normalized key,
// preserving its original casing and the input order. Skills whose key is
// empty are dropped.
func Deduplicate(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	unique := make([]string, 0, len(skills))

	for _, skill := range skills {
		key := Normalize(skill)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, skill)
	}
	return unique
}
