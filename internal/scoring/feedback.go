package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/types"
)

// Relevance thresholds for the interpretive feedback line and for recommendations.
const (
	lowRelevance       = 0.3
	moderateRelevance  = 0.6
	recommendRelevance = 0.4
)

// FeedbackInput carries every signal the feedback synthesizer reads.
type FeedbackInput struct {
	// Structural is the heuristic scorer's feedback, copied verbatim.
	Structural []string
	// Relevance is nil when no job description was supplied.
	Relevance *float64
	Backend   types.Backend
	Sections  types.SectionMap
	Contact   types.ContactInfo
	Breakdown types.Breakdown
}

// SynthesizeFeedback builds the ordered feedback records: structural issues,
// relevance interpretation, section status, contact status, the score
// breakdown and, for weak embedding matches, recommendations.
func SynthesizeFeedback(in FeedbackInput) []types.FeedbackItem {
	items := make([]types.FeedbackItem, 0, len(in.Structural)+10)

	for _, msg := range in.Structural {
		items = append(items, item(types.FeedbackStructural, types.PayloadMessage, msg))
	}

	if in.Relevance != nil {
		r := *in.Relevance
		items = append(items, types.FeedbackItem{
			Kind: types.FeedbackRelevance,
			Payload: map[string]string{
				types.PayloadBackend: string(in.Backend),
				types.PayloadValue:   formatDecimal(roundTo(r, 3)),
			},
		})
		items = append(items, item(types.FeedbackRelevanceBand, types.PayloadBand, relevanceBand(r)))
	}

	for _, key := range types.SectionKeys {
		items = append(items, types.FeedbackItem{
			Kind: types.FeedbackSection,
			Payload: map[string]string{
				types.PayloadSection: string(key),
				types.PayloadPresent: strconv.FormatBool(in.Sections.Has(key)),
			},
		})
	}

	items = append(items, contactItem(types.FeedbackEmail, in.Contact.Email))
	items = append(items, contactItem(types.FeedbackPhone, in.Contact.Phone))

	items = append(items, item(types.FeedbackBreakdown, types.PayloadSummary, formatBreakdown(in.Breakdown)))

	if in.Backend == types.BackendEmbedding && in.Relevance != nil && *in.Relevance < recommendRelevance {
		items = append(items,
			item(types.FeedbackRecommendation, types.PayloadTopic, types.TopicKeywords),
			item(types.FeedbackRecommendation, types.PayloadTopic, types.TopicExperience),
		)
	}

	return items
}

func item(kind types.FeedbackKind, key, value string) types.FeedbackItem {
	return types.FeedbackItem{Kind: kind, Payload: map[string]string{key: value}}
}

func contactItem(kind types.FeedbackKind, value *string) types.FeedbackItem {
	payload := map[string]string{types.PayloadPresent: "false"}
	if value != nil && *value != "" {
		payload[types.PayloadPresent] = "true"
		payload[types.PayloadValue] = *value
	}
	return types.FeedbackItem{Kind: kind, Payload: payload}
}

func relevanceBand(r float64) string {
	switch {
	case r < lowRelevance:
		return types.BandLow
	case r < moderateRelevance:
		return types.BandModerate
	default:
		return types.BandStrong
	}
}

// RenderFeedback turns feedback records into display lines, one per record.
func RenderFeedback(items []types.FeedbackItem) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, RenderItem(it))
	}
	return lines
}

// RenderItem returns the display line for a single feedback record.
func RenderItem(it types.FeedbackItem) string {
	p := it.Payload
	present, _ := strconv.ParseBool(p[types.PayloadPresent])

	switch it.Kind {
	case types.FeedbackStructural:
		return p[types.PayloadMessage]

	case types.FeedbackRelevance:
		return fmt.Sprintf("Relevance (%s) = %s", p[types.PayloadBackend], p[types.PayloadValue])

	case types.FeedbackRelevanceBand:
		switch p[types.PayloadBand] {
		case types.BandLow:
			return "Low semantic match to job description - consider adding more relevant keywords and skills"
		case types.BandModerate:
			return "Moderate semantic match to job description - good alignment with some improvement opportunities"
		default:
			return "Excellent semantic match to job description - strong alignment with requirements"
		}

	case types.FeedbackSection:
		title := types.SectionKey(p[types.PayloadSection]).Title()
		if present {
			return title + " section detected"
		}
		return title + " section NOT detected - consider adding this section"

	case types.FeedbackEmail:
		if present {
			return "Email found: " + p[types.PayloadValue]
		}
		return "Email not found - add professional email address"

	case types.FeedbackPhone:
		if present {
			return "Phone found: " + p[types.PayloadValue]
		}
		return "Phone not found - add contact phone number"

	case types.FeedbackBreakdown:
		return "Score breakdown: " + p[types.PayloadSummary]

	case types.FeedbackRecommendation:
		if p[types.PayloadTopic] == types.TopicExperience {
			return "Recommendation: Align your experience descriptions with the job requirements more closely"
		}
		return "Recommendation: Use more specific technical terms and industry keywords from the job description"
	}

	return p[types.PayloadMessage]
}

// formatBreakdown renders "education:12, experience:0, ..., heuristics:60.0, relevance:0.0".
// Point components print as integers, totals as floats.
func formatBreakdown(b types.Breakdown) string {
	entries := b.Entries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		var v string
		if e.Points {
			v = strconv.FormatInt(int64(e.Value), 10)
		} else {
			v = formatDecimal(e.Value)
		}
		parts = append(parts, e.Key+":"+v)
	}
	return strings.Join(parts, ", ")
}

// formatDecimal prints the shortest representation that round-trips, always
// with a decimal point or exponent ("60.0", "16.8", "1e-05").
func formatDecimal(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
