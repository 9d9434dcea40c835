// Package relevance computes how closely a resume matches a job description.
package relevance

import (
	"math"
	"regexp"
	"strings"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/textclean"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TFIDF scores similarity with term-frequency / inverse-document-frequency
// vectors built over the two-document corpus {job, resume}.
type TFIDF struct {
	stopwords textclean.Stopwords
}

// NewTFIDF returns a TF-IDF backend that drops the given stopwords.
func NewTFIDF(stopwords textclean.Stopwords) *TFIDF {
	return &TFIDF{stopwords: stopwords}
}

// Similarity returns the cosine similarity of the TF-IDF vectors of resume and
// job, in [0, 1]. Inputs with no usable terms score 0.
func (t *TFIDF) Similarity(resume, job string) float64 {
	corpus := [][]string{t.tokenize(job), t.tokenize(resume)}

	vocab := make(map[string]int)
	for _, doc := range corpus {
		for _, term := range doc {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return 0
	}

	df := make([]int, len(vocab))
	counts := make([][]float64, len(corpus))
	for i, doc := range corpus {
		counts[i] = make([]float64, len(vocab))
		for _, term := range doc {
			counts[i][vocab[term]]++
		}
		for j, c := range counts[i] {
			if c > 0 {
				df[j]++
			}
		}
	}

	n := float64(len(corpus))
	for j := range df {
		// smoothed idf, as if one extra document contained every term once
		idf := math.Log((1+n)/(1+float64(df[j]))) + 1
		for i := range counts {
			counts[i][j] *= idf
		}
	}

	sim := cosine(counts[0], counts[1])
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return clamp01(sim)
}

func (t *TFIDF) tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if t.stopwords.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// cosine returns the cosine similarity of a and b, or 0 when either is a zero vector.
func cosine[T float32 | float64](a, b []T) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
