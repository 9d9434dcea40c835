// Package types provides type definitions for structured data used throughout the ATS scoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// RawDocument is the output of text extraction: the salvaged text plus any
// errors encountered while decoding the uploaded file.
type RawDocument struct {
	Text          string   `json:"text"`
	ParsingErrors []string `json:"parsingErrors"`
}

// SectionKey names one of the resume sections the locator looks for.
type SectionKey string

// Section keys, in the order feedback reports them.
const (
	SectionEducation  SectionKey = "education"
	SectionExperience SectionKey = "experience"
	SectionSkills     SectionKey = "skills"
)

// SectionKeys lists every section key in reporting order.
var SectionKeys = []SectionKey{SectionEducation, SectionExperience, SectionSkills}

// Title returns the key with its first letter upper-cased ("Education").
func (k SectionKey) Title() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// SectionMap holds the bodies of the located sections. A nil field means the
// section was not found.
type SectionMap struct {
	Education  *string `json:"education"`
	Experience *string `json:"experience"`
	Skills     *string `json:"skills"`
}

// Get returns the section body for key, or nil when absent.
func (m SectionMap) Get(key SectionKey) *string {
	switch key {
	case SectionEducation:
		return m.Education
	case SectionExperience:
		return m.Experience
	case SectionSkills:
		return m.Skills
	default:
		return nil
	}
}

// Has reports whether the section is present with a non-empty body.
func (m SectionMap) Has(key SectionKey) bool {
	body := m.Get(key)
	return body != nil && *body != ""
}

// ContactInfo holds the first email and phone number found in the text.
type ContactInfo struct {
	Email *string `json:"email" yaml:"email"`
	Phone *string `json:"phone" yaml:"phone"`
}

// HasAny reports whether either an email or a phone number is present.
func (c ContactInfo) HasAny() bool {
	return (c.Email != nil && *c.Email != "") || (c.Phone != nil && *c.Phone != "")
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
