package flashcard

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"coursekit/internal/domain"
)

var commonWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {}, "of": {},
	"for": {}, "with": {}, "by": {}, "to": {}, "and": {}, "or": {}, "but": {},
}

// Validate drops cards whose answer contains a word longer than three
// characters that does not occur in text.
func Validate(cards []domain.Flashcard, text string) []domain.Flashcard {
	lower := strings.ToLower(text)
	out := make([]domain.Flashcard, 0, len(cards))
	for _, c := range cards {
		if grounded(c.Answer, lower) {
			out = append(out, c)
		}
	}
	return out
}

func grounded(answer, lowerText string) bool {
	for _, w := range strings.Fields(strings.ToLower(answer)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if _, ok := commonWords[w]; ok {
			continue
		}
		if utf8.RuneCountInString(w) > 3 && !strings.Contains(lowerText, w) {
			return false
		}
	}
	return true
}
