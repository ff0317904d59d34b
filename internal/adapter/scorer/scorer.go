package scorer

import (
	"regexp"
	"sort"
	"strings"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/domain"
)

const (
	minSentenceWords = 5
	maxSentenceWords = 40

	typeMatchBonus = 2.0

	// topic summaries
	leadWeight     = 2.0
	tailWeight     = 1.5
	sectionWeight  = 2.5
	positionalSpan = 3

	// keyword-free sentences kept only for their position start from this score
	positionalBaseline = 0.25
)

var (
	sectionMarkerRe = regexp.MustCompile(`(?i)\b(?:introduction|conclusion|overview|summary|in summary|in conclusion|to summarize|objectives?|key (?:concepts|points|terms))\b`)
	leadingNumberRe = regexp.MustCompile(`^\(?\d+(?:\.\d+)*[.)]?\s`)
)

// Scorer ranks sentences of retrieved context against a question or topic.
type Scorer struct {
	tokenizer    *analyzer.Tokenizer
	maxSentences int
	minScore     float64
}

func New(tokenizer *analyzer.Tokenizer, maxSentences int, minScore float64) *Scorer {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	return &Scorer{
		tokenizer:    tokenizer,
		maxSentences: maxSentences,
		minScore:     minScore,
	}
}

// Keywords returns the distinct index terms of query.
func (s *Scorer) Keywords(query string) []string {
	return s.tokenizer.TermSet(query)
}

// RankQuestion returns the best sentences for answering query, best first.
// Only sentences sharing at least one keyword with the query are returned.
func (s *Scorer) RankQuestion(query string, sentences []string) []domain.ScoredSentence {
	qt := Classify(query)
	keywords := s.Keywords(query)

	var candidates []domain.ScoredSentence
	for i, sentence := range sentences {
		cand, ok := s.scoreSentence(sentence, i, keywords, qt)
		if !ok || cand.Matches == 0 {
			continue
		}
		candidates = append(candidates, cand)
	}

	selected := s.selectTop(candidates)
	if len(selected) == 0 {
		selected = s.rescue(sentences, keywords, qt)
	}
	return selected
}

// RankTopic returns sentences for a topic summary in document order. Besides
// keyword matches it favors sentences near the start or end of the context
// and sentences that look like section openers; such sentences may be kept
// without any keyword. headings are section titles of the document. A topic
// is a label, not a question, so it is never classified.
func (s *Scorer) RankTopic(topic string, sentences []string, headings []string) []domain.ScoredSentence {
	qt := domain.QueryGeneral
	keywords := s.Keywords(topic)

	var candidates []domain.ScoredSentence
	for i, sentence := range sentences {
		cand, ok := s.scoreSentence(sentence, i, keywords, qt)
		if !ok {
			continue
		}
		w := positionWeight(i, len(sentences), sentence, headings)
		switch {
		case cand.Matches > 0:
			cand.Score *= w
		case w > 1:
			cand.Score = positionalBaseline * w * lengthFactor(analyzer.CountWords(sentence))
		default:
			continue
		}
		candidates = append(candidates, cand)
	}

	selected := s.selectTop(candidates)
	if !hasMatch(selected) {
		if best, ok := bestMatch(candidates); ok {
			if len(selected) >= s.maxSentences {
				selected = selected[:s.maxSentences-1]
			}
			selected = append(selected, best)
		} else {
			selected = s.rescue(sentences, keywords, qt)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Position < selected[j].Position
	})
	return selected
}

// scoreSentence computes
//
//	keyword_count * keyword_density * length_factor * type_bonus
//
// ok is false when the sentence is outside the word count limits.
func (s *Scorer) scoreSentence(sentence string, position int, keywords []string, qt domain.QueryType) (domain.ScoredSentence, bool) {
	wc := analyzer.CountWords(sentence)
	if wc < minSentenceWords || wc > maxSentenceWords {
		return domain.ScoredSentence{}, false
	}
	return s.score(sentence, position, wc, keywords, qt), true
}

func (s *Scorer) score(sentence string, position, wc int, keywords []string, qt domain.QueryType) domain.ScoredSentence {
	matches := s.countMatches(sentence, keywords)
	out := domain.ScoredSentence{Text: sentence, Position: position, Matches: matches}
	if matches == 0 || wc == 0 {
		return out
	}

	density := float64(matches) / float64(wc)
	bonus := 1.0
	if matchesType(qt, sentence) {
		bonus = typeMatchBonus
	}
	out.Score = float64(matches) * density * lengthFactor(wc) * bonus
	return out
}

func (s *Scorer) countMatches(sentence string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	terms := make(map[string]struct{})
	for _, t := range s.tokenizer.Terms(sentence) {
		terms[t] = struct{}{}
	}
	n := 0
	for _, k := range keywords {
		if _, ok := terms[k]; ok {
			n++
		}
	}
	return n
}

// selectTop keeps up to maxSentences candidates scoring above minScore,
// best first. When the threshold removes everything the single best
// keyword-matching candidate is kept.
func (s *Scorer) selectTop(candidates []domain.ScoredSentence) []domain.ScoredSentence {
	ranked := make([]domain.ScoredSentence, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	var out []domain.ScoredSentence
	for _, c := range ranked {
		if len(out) == s.maxSentences {
			break
		}
		if c.Score > s.minScore {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		if best, ok := bestMatch(ranked); ok {
			out = append(out, best)
		}
	}
	return out
}

// rescue returns the first sentence mentioning a keyword when every
// candidate fell outside the word count limits.
func (s *Scorer) rescue(sentences []string, keywords []string, qt domain.QueryType) []domain.ScoredSentence {
	for i, sentence := range sentences {
		cand := s.score(sentence, i, analyzer.CountWords(sentence), keywords, qt)
		if cand.Matches > 0 {
			return []domain.ScoredSentence{cand}
		}
	}
	return nil
}

func lengthFactor(wc int) float64 {
	switch {
	case wc >= 10 && wc <= 25:
		return 1.5
	case wc > maxSentenceWords:
		return 0.7
	default:
		return 1.0
	}
}

func positionWeight(i, n int, sentence string, headings []string) float64 {
	w := 1.0
	if i < positionalSpan {
		w = leadWeight
	} else if i >= n-positionalSpan {
		w = tailWeight
	}
	if isSectionOpener(sentence, headings) && sectionWeight > w {
		w = sectionWeight
	}
	return w
}

func isSectionOpener(sentence string, headings []string) bool {
	if sectionMarkerRe.MatchString(sentence) || leadingNumberRe.MatchString(sentence) {
		return true
	}
	lower := strings.ToLower(sentence)
	for _, h := range headings {
		if h != "" && strings.HasPrefix(lower, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

func hasMatch(sentences []domain.ScoredSentence) bool {
	for _, s := range sentences {
		if s.Matches > 0 {
			return true
		}
	}
	return false
}

// bestMatch returns the highest scoring candidate with a keyword match.
func bestMatch(candidates []domain.ScoredSentence) (domain.ScoredSentence, bool) {
	best := domain.ScoredSentence{}
	found := false
	for _, c := range candidates {
		if c.Matches == 0 {
			continue
		}
		if !found || c.Score > best.Score {
			best = c
			found = true
		}
	}
	return best, found
}

// Texts returns the sentence texts in the given order.
func Texts(sentences []domain.ScoredSentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}
