// Package textclean normalises resume and job description text for similarity scoring.
package textclean

import (
	"bufio"
	_ "embed"
	"io"
	"strings"
	"sync"
)

//go:embed stopwords_en.txt
var englishStopwords string

// Stopwords is an immutable set of lowercase words removed during cleaning.
// The zero value is an empty set.
type Stopwords struct {
	words map[string]struct{}
}

// Contains reports whether word is a stopword. The lookup is case-sensitive;
// callers pass lowercased tokens.
func (s Stopwords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s Stopwords) Len() int {
	return len(s.words)
}

// NewStopwords builds a set from words, lowercasing and trimming each one.
// Blank entries are skipped.
func NewStopwords(words ...string) Stopwords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return Stopwords{words: set}
}

// ReadStopwords reads one word per line from r. Lines starting with '#' are
// comments.
func ReadStopwords(r io.Reader) (Stopwords, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return Stopwords{}, err
	}
	return NewStopwords(words...), nil
}

var (
	englishOnce sync.Once
	english     Stopwords
)

// English returns the built-in English stopword list. It is parsed on first
// use and shared afterwards; an unreadable list yields an empty set.
func English() Stopwords {
	englishOnce.Do(func() {
		set, err := ReadStopwords(strings.NewReader(englishStopwords))
		if err != nil {
			set = Stopwords{}
		}
		english = set
	})
	return english
}
