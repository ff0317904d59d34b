package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// letters, digits, whitespace and a small set of punctuation survive
	unsafeCharRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,?!:;\-'"%()]`)
)

// Normalize collapses whitespace runs to single spaces and strips characters
// outside the safe punctuation set.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.ToValidUTF8(raw, "")
	text = unsafeCharRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitSentences splits text on sentence-final punctuation followed by
// whitespace. A period is not treated as a boundary when the word before it
// looks like an abbreviation: a single capital letter ("U.S."), dotted
// initials ("e.g.") or a short title ("Dr."). This is a heuristic and makes no
// attempt to be grammatically complete.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		// absorb closing quotes and repeated punctuation
		end := i + 1
		for end < len(runes) && strings.ContainsRune(`.?!"')`, runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}
		if r == '.' && isAbbreviation(runes[start:i]) {
			i = end - 1
			continue
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = end
		i = end - 1
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// EndsSentence reports whether SplitSentences would end a sentence after
// word when it is followed by whitespace.
func EndsSentence(word string) bool {
	runes := []rune(word)
	tail := len(runes)
	for tail > 0 && strings.ContainsRune(`.?!"')`, runes[tail-1]) {
		tail--
	}
	for i := tail; i < len(runes); i++ {
		switch runes[i] {
		case '?', '!':
			return true
		case '.':
			return !isAbbreviation(runes[:i])
		}
	}
	return false
}

var titleAbbreviations = map[string]struct{}{
	"Mr": {}, "Mrs": {}, "Ms": {}, "Dr": {}, "Prof": {}, "St": {}, "Jr": {},
	"Sr": {}, "vs": {}, "etc": {}, "Fig": {}, "fig": {}, "No": {}, "Vol": {},
}

// isAbbreviation inspects the word immediately before a period.
func isAbbreviation(prefix []rune) bool {
	j := len(prefix)
	for j > 0 && !unicode.IsSpace(prefix[j-1]) {
		j--
	}
	word := strings.TrimLeft(string(prefix[j:]), `"'(`)
	if word == "" {
		return false
	}
	if _, ok := titleAbbreviations[word]; ok {
		return true
	}
	w := []rune(word)
	if len(w) == 1 && unicode.IsUpper(w[0]) {
		return true
	}
	// dotted initials such as "U.S" or "e.g"
	if strings.Contains(word, ".") {
		for _, part := range strings.Split(word, ".") {
			if len([]rune(part)) != 1 {
				return false
			}
		}
		return true
	}
	return false
}

// PackSentences groups consecutive sentences into passages of at most
// maxChars characters. A single sentence longer than maxChars becomes its own
// passage.
func PackSentences(text string, maxChars int) []string {
	sentences := SplitSentences(text)
	if maxChars <= 0 {
		return sentences
	}

	var passages []string
	var current []string
	size := 0

	for _, s := range sentences {
		n := len([]rune(s))
		if len(current) > 0 && size+n > maxChars {
			passages = append(passages, strings.Join(current, " "))
			current = nil
			size = 0
		}
		current = append(current, s)
		size += n
	}
	if len(current) > 0 {
		passages = append(passages, strings.Join(current, " "))
	}
	return passages
}
