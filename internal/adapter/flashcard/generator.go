package flashcard

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/adapter/composer"
	"coursekit/internal/domain"
)

const (
	maxTermWords        = 5
	minExplanationChars = 10
	blank               = "_____"
)

var (
	definitionRe = regexp.MustCompile(`^(.+?)\s+(is|are|refers to|means)\s+(.+)$`)
	colonRe      = regexp.MustCompile(`^([^:]{2,60}):\s*(.+)$`)
	termRe       = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}'\- ]*$`)
	yearRe       = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
	percentRe    = regexp.MustCompile(`\b\d+(?:\.\d+)?%`)
	importanceRe = regexp.MustCompile(`(?i)\b(?:key|important|importance|essential|crucial|fundamental|significant|critical)\b`)
)

var determiners = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "this": {}, "these": {}, "that": {},
	"those": {}, "its": {}, "their": {},
}

var importanceWords = map[string]struct{}{
	"key": {}, "important": {}, "importance": {}, "essential": {}, "crucial": {},
	"fundamental": {}, "significant": {}, "critical": {},
}

// Generator turns sentences of retrieved context into question and answer
// pairs using definition, colon and fact patterns.
type Generator struct {
	tokenizer      *analyzer.Tokenizer
	maxAnswerChars int
	validate       bool
}

func New(tokenizer *analyzer.Tokenizer, maxAnswerChars int, validate bool) *Generator {
	return &Generator{
		tokenizer:      tokenizer,
		maxAnswerChars: maxAnswerChars,
		validate:       validate,
	}
}

// Generate returns at most count cards built from context. When validation is
// enabled, cards whose answers use words absent from source are dropped.
func (g *Generator) Generate(context, source string, count int) []domain.Flashcard {
	if count <= 0 {
		return nil
	}

	sentences := analyzer.SplitSentences(context)

	var cards []domain.Flashcard
	used := make([]bool, len(sentences))
	for i, s := range sentences {
		if card, ok := g.fromPatterns(s); ok {
			cards = append(cards, card)
			used[i] = true
		}
	}

	if len(cards) < count {
		for i, s := range sentences {
			if used[i] {
				continue
			}
			if card, ok := g.fillInBlank(s); ok {
				cards = append(cards, card)
			}
		}
	}

	cards = dedup(cards)
	for i := range cards {
		cards[i].Question = ensureTerminal(cards[i].Question)
		cards[i].Answer = composer.Truncate(cards[i].Answer, g.maxAnswerChars)
	}
	if g.validate {
		cards = Validate(cards, source)
	}
	return preferShort(cards, count)
}

// fromPatterns tries the definition, colon, year and percentage patterns in
// that order.
func (g *Generator) fromPatterns(sentence string) (domain.Flashcard, bool) {
	body := trimTerminal(sentence)

	if m := definitionRe.FindStringSubmatch(body); m != nil {
		if term, ok := g.cleanTerm(m[1]); ok && len(m[3]) >= minExplanationChars {
			return domain.Flashcard{Question: definitionQuestion(term, m[2]), Answer: m[3]}, true
		}
	}

	if m := colonRe.FindStringSubmatch(body); m != nil {
		explanation := strings.TrimSpace(m[2])
		if term, ok := g.cleanTerm(m[1]); ok && len(explanation) >= minExplanationChars {
			return domain.Flashcard{Question: fmt.Sprintf("What is meant by %s?", term), Answer: explanation}, true
		}
	}

	if m := yearRe.FindStringSubmatch(sentence); m != nil {
		return domain.Flashcard{Question: fmt.Sprintf("What happened in %s?", m[1]), Answer: sentence}, true
	}

	if loc := percentRe.FindStringIndex(sentence); loc != nil {
		prompt := sentence[:loc[0]] + blank + sentence[loc[1]:]
		return domain.Flashcard{
			Question: "Fill in the blank: " + prompt,
			Answer:   sentence[loc[0]:loc[1]],
		}, true
	}

	return domain.Flashcard{}, false
}

// fillInBlank blanks the longest content word of a sentence that calls
// itself important.
func (g *Generator) fillInBlank(sentence string) (domain.Flashcard, bool) {
	if !importanceRe.MatchString(sentence) {
		return domain.Flashcard{}, false
	}

	target := ""
	for _, w := range analyzer.SplitWords(sentence) {
		lower := strings.ToLower(w)
		if utf8.RuneCountInString(w) <= 3 || g.tokenizer.IsStopword(lower) {
			continue
		}
		if _, ok := importanceWords[lower]; ok {
			continue
		}
		if utf8.RuneCountInString(w) > utf8.RuneCountInString(target) {
			target = w
		}
	}
	if target == "" {
		return domain.Flashcard{}, false
	}

	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(target) + `\b`)
	loc := re.FindStringIndex(sentence)
	if loc == nil {
		return domain.Flashcard{}, false
	}
	prompt := sentence[:loc[0]] + blank + sentence[loc[1]:]
	return domain.Flashcard{Question: "Fill in the blank: " + prompt, Answer: target}, true
}

// cleanTerm strips leading determiners and checks the term is a short noun
// phrase rather than a clause.
func (g *Generator) cleanTerm(raw string) (string, bool) {
	words := strings.Fields(raw)
	for len(words) > 0 {
		if _, ok := determiners[strings.ToLower(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	if len(words) == 0 || len(words) > maxTermWords {
		return "", false
	}

	term := strings.Join(words, " ")
	if !termRe.MatchString(term) {
		return "", false
	}

	for _, w := range words {
		if !g.tokenizer.IsStopword(w) {
			return term, true
		}
	}
	return "", false
}

func definitionQuestion(term, verb string) string {
	switch verb {
	case "are":
		return fmt.Sprintf("What are %s?", term)
	case "refers to":
		return fmt.Sprintf("What does %s refer to?", term)
	case "means":
		return fmt.Sprintf("What does %s mean?", term)
	default:
		return fmt.Sprintf("What is %s?", term)
	}
}

func trimTerminal(s string) string {
	return strings.TrimRightFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';' || r == ':' || unicode.IsSpace(r)
	})
}

func ensureTerminal(q string) string {
	q = strings.TrimSpace(q)
	if strings.HasSuffix(q, "?") || strings.HasSuffix(q, ".") {
		return q
	}
	return trimTerminal(q) + "?"
}

func dedup(cards []domain.Flashcard) []domain.Flashcard {
	seen := make(map[string]struct{}, len(cards))
	out := cards[:0]
	for _, c := range cards {
		key := strings.ToLower(strings.TrimSpace(c.Question))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// preferShort keeps the count cards with the shortest answers, in their
// original order.
func preferShort(cards []domain.Flashcard, count int) []domain.Flashcard {
	if len(cards) <= count {
		return cards
	}

	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return utf8.RuneCountInString(cards[idx[a]].Answer) < utf8.RuneCountInString(cards[idx[b]].Answer)
	})
	idx = idx[:count]
	sort.Ints(idx)

	out := make([]domain.Flashcard, count)
	for i, j := range idx {
		out[i] = cards[j]
	}
	return out
}
