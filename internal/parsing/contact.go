package parsing

import (
	"regexp"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

var (
	// emailPattern is intentionally loose: any word run, '@', any word run.
	emailPattern = regexp.MustCompile(`[\p{L}\p{N}_.\-]+@[\p{L}\p{N}_.\-]+`)
	// phonePattern needs at least eight characters bounded by digits. Separators
	// may be any Unicode space, including the NBSP that PDF extraction emits.
	phonePattern = regexp.MustCompile(`\+?\p{Nd}[\p{Nd}` + unicodeSpace + `\-()]{6,}\p{Nd}`)
)

// ExtractContact returns the first email address and the first phone number
// found in text. Missing values are nil.
func ExtractContact(text string) types.ContactInfo {
	var contact types.ContactInfo
	if m := emailPattern.FindString(text); m != "" {
		contact.Email = types.StringPtr(m)
	}
	if m := phonePattern.FindString(text); m != "" {
		contact.Phone = types.StringPtr(m)
	}
	return contact
}
