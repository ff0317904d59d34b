package topics

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/domain"
)

const (
	// topic words must be longer than this
	minWordLength = 3
	topTerms      = 20

	minPhraseWords = 2
	maxPhraseWords = 5
)

// Extractor derives topic phrases from term frequencies of a document.
type Extractor struct {
	tokenizer *analyzer.Tokenizer
	minTopics int
	maxTopics int
}

func New(tokenizer *analyzer.Tokenizer, minTopics, maxTopics int) *Extractor {
	if maxTopics <= 0 {
		maxTopics = 8
	}
	if minTopics > maxTopics {
		minTopics = maxTopics
	}
	return &Extractor{
		tokenizer: tokenizer,
		minTopics: minTopics,
		maxTopics: maxTopics,
	}
}

type phrase struct {
	words []string
	score int
}

func (p phrase) label() string { return strings.Join(p.words, " ") }

// Extract returns up to maxTopics title-cased phrases. For each of the most
// frequent terms the best 2-5 word run of frequent words around it is taken
// as a candidate; candidates rank by the summed frequency of their words.
// Single frequent words pad the result up to minTopics.
func (e *Extractor) Extract(text string) []domain.Topic {
	counts, ranked := e.rankTerms(text)
	if len(ranked) == 0 {
		return nil
	}
	if len(ranked) > topTerms {
		ranked = ranked[:topTerms]
	}

	sentences := analyzer.SplitSentences(text)
	sentenceWords := make([][]string, len(sentences))
	for i, s := range sentences {
		sentenceWords[i] = analyzer.SplitWords(strings.ToLower(s))
	}

	seen := make(map[string]struct{})
	var candidates []phrase
	for _, term := range ranked {
		p, ok := bestPhrase(term, sentenceWords, counts)
		if !ok {
			continue
		}
		if _, dup := seen[p.label()]; dup {
			continue
		}
		seen[p.label()] = struct{}{}
		candidates = append(candidates, p)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > e.maxTopics {
		candidates = candidates[:e.maxTopics]
	}

	labels := make([]string, 0, e.maxTopics)
	used := make(map[string]struct{})
	for _, p := range candidates {
		labels = append(labels, p.label())
		for _, w := range p.words {
			used[w] = struct{}{}
		}
	}

	// pad with single words, preferring words not already in a phrase
	for pass := 0; pass < 2 && len(labels) < e.minTopics; pass++ {
		for _, term := range ranked {
			if len(labels) >= e.minTopics {
				break
			}
			if _, dup := seen[term]; dup {
				continue
			}
			if _, inPhrase := used[term]; inPhrase && pass == 0 {
				continue
			}
			seen[term] = struct{}{}
			labels = append(labels, term)
		}
	}

	caser := cases.Title(language.English)
	topics := make([]domain.Topic, len(labels))
	for i, l := range labels {
		topics[i] = domain.Topic{Label: caser.String(l)}
	}
	return topics
}

// rankTerms counts topic words and orders them by frequency, ties by first
// occurrence.
func (e *Extractor) rankTerms(text string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, w := range e.tokenizer.TermsLongerThan(text, minWordLength) {
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return counts, order
}

// bestPhrase scans every occurrence of term for windows of 2-5 consecutive
// counted words containing it. The highest summed frequency wins, then the
// shorter window, then the earlier one.
func bestPhrase(term string, sentenceWords [][]string, counts map[string]int) (phrase, bool) {
	var best phrase
	found := false

	for _, words := range sentenceWords {
		for pos, w := range words {
			if w != term {
				continue
			}
			for size := minPhraseWords; size <= maxPhraseWords; size++ {
				for start := pos - size + 1; start <= pos; start++ {
					end := start + size
					if start < 0 || end > len(words) {
						continue
					}
					score, ok := windowScore(words[start:end], counts)
					if !ok {
						continue
					}
					if !found || score > best.score || (score == best.score && size < len(best.words)) {
						best = phrase{words: append([]string(nil), words[start:end]...), score: score}
						found = true
					}
				}
			}
		}
	}

	return best, found
}

// windowScore sums the counts of window's words. ok is false when a word is
// not a counted topic word or repeats within the window.
func windowScore(window []string, counts map[string]int) (int, bool) {
	score := 0
	seen := make(map[string]struct{}, len(window))
	for _, w := range window {
		c, ok := counts[w]
		if !ok {
			return 0, false
		}
		if _, dup := seen[w]; dup {
			return 0, false
		}
		seen[w] = struct{}{}
		score += c
	}
	return score, true
}
