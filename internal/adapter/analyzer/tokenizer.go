package analyzer

import (
	"strings"
	"unicode"
)

// MinTermLength is the shortest token kept as an index term. Tokens of this
// length or shorter are dropped.
const MinTermLength = 2

// Tokenizer splits text into lower-cased index terms with stopword removal.
type Tokenizer struct {
	stopwords map[string]struct{}
	minLen    int
}

// NewTokenizer creates a Tokenizer that keeps tokens longer than MinTermLength.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		stopwords: defaultStopwords(),
		minLen:    MinTermLength,
	}
}

// Terms splits text into index terms: lower-cased word tokens that are not
// stopwords and are longer than the tokenizer's length threshold.
func (t *Tokenizer) Terms(text string) []string {
	return t.TermsLongerThan(text, t.minLen)
}

// TermsLongerThan is Terms with an explicit length threshold.
func (t *Tokenizer) TermsLongerThan(text string, n int) []string {
	words := SplitWords(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.ToLower(word)
		if len([]rune(word)) <= n {
			continue
		}
		if t.IsStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// TermSet returns the distinct index terms of text in first-seen order.
func (t *Tokenizer) TermSet(text string) []string {
	terms := t.Terms(text)
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// Counts builds the term frequency profile of text.
func (t *Tokenizer) Counts(text string) map[string]int {
	counts := make(map[string]int)
	for _, term := range t.Terms(text) {
		counts[term]++
	}
	return counts
}

func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[strings.ToLower(word)]
	return ok
}

// CountWords returns the number of whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SplitWords splits text into words using unicode word boundaries.
func SplitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"the", "a", "an", "and", "but", "if", "or", "because", "as", "what",
		"which", "this", "that", "these", "those", "then", "just", "so", "than",
		"such", "when", "who", "how", "where", "why", "is", "are", "am", "was",
		"were", "be", "been", "being", "have", "has", "had", "having", "do",
		"does", "did", "doing", "to", "from", "of", "at", "by", "for", "with",
		"about", "against", "between", "into", "through", "during", "before",
		"after", "above", "below", "up", "down", "in", "out", "on", "off",
		"over", "under", "again", "further", "once", "here", "there", "all",
		"any", "both", "each", "few", "more", "most", "other", "some", "no",
		"nor", "not", "only", "own", "same", "too", "very", "you", "your",
		"it", "its", "they", "their", "them", "we", "our", "can", "will",
		"would", "could", "should", "may", "might", "must", "also", "whom",
		"his", "her", "she", "he", "him", "me", "my", "i",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
