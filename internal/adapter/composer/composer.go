package composer

import (
	"fmt"
	"strings"
	"unicode"

	"coursekit/internal/domain"
)

// NoAnswerText is returned in place of an answer when nothing in the course
// material matches the question.
const NoAnswerText = "I couldn't find specific information about that in the course materials."

const (
	ellipsis          = "..."
	leadIn            = "Based on the course materials: "
	enumerationLeadIn = "Key points from the course materials:"
	bullet            = "• "

	// lead-ins are used from this many sentences on
	leadInThreshold = 3
)

// NoSummaryText is the fallback summary for a topic with no matching
// sentences.
func NoSummaryText(topic string) string {
	return fmt.Sprintf("No specific information about %s was found in the course materials.", topic)
}

// Composer joins ranked sentences into answer and summary texts under a
// character budget.
type Composer struct {
	answerMaxChars  int
	summaryMaxChars int
}

func New(answerMaxChars, summaryMaxChars int) *Composer {
	return &Composer{
		answerMaxChars:  answerMaxChars,
		summaryMaxChars: summaryMaxChars,
	}
}

// Answer keeps the order of sentences, which is expected best first.
func (c *Composer) Answer(sentences []string, qt domain.QueryType) string {
	return Compose(sentences, qt, c.answerMaxChars)
}

func (c *Composer) Summary(sentences []string, qt domain.QueryType) string {
	return Compose(sentences, qt, c.summaryMaxChars)
}

// Compose joins sentences with a single space. Three or more sentences get
// a lead-in suited to qt; enumerations become a bulleted list. The result is
// cut to maxChars with a trailing ellipsis.
func Compose(sentences []string, qt domain.QueryType, maxChars int) string {
	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	var text string
	switch {
	case len(parts) < leadInThreshold:
		text = strings.Join(parts, " ")
	case qt == domain.QueryEnumeration:
		text = enumerationLeadIn + "\n" + bullet + strings.Join(parts, "\n"+bullet)
	case qt == domain.QueryDescriptive, qt == domain.QueryDefinition, qt == domain.QueryExplanation:
		text = leadIn + strings.Join(parts, " ")
	default:
		text = strings.Join(parts, " ")
	}

	return Truncate(text, maxChars)
}

// Truncate shortens text to at most maxChars runes, the last three being an
// ellipsis. A non-positive maxChars disables the limit.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return text
	}
	if maxChars <= len(ellipsis) {
		return string(runes[:maxChars])
	}
	cut := strings.TrimRightFunc(string(runes[:maxChars-len(ellipsis)]), unicode.IsSpace)
	return cut + ellipsis
}
