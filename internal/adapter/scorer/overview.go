package scorer

import (
	"strings"

	"coursekit/internal/adapter/analyzer"
)

// OverviewParagraphs is how many leading paragraphs an overview scan reads.
const OverviewParagraphs = 3

const (
	maxOverviewSentences  = 2
	overviewFallbackCount = 3
)

var overviewTriggers = []string{
	"what is this about",
	"what is this document about",
	"what is the document about",
	"what is this course about",
	"what is the course about",
	"what is this text about",
	"what is this paper about",
	"what is this chapter about",
	"what does this document cover",
	"what does this course cover",
	"what is the main topic",
	"what are the main topics",
	"give me an overview",
	"overview of this document",
	"summarize this document",
	"summarize the document",
}

var overviewIndicators = []string{
	"introduction", "overview", "this paper", "this course", "this document",
	"this chapter", "this module", "this unit", "this text", "we will",
	"we discuss", "we present", "aims to", "purpose", "objective",
	"focuses on", "covers", "is about",
}

// IsOverviewQuery reports whether query asks what the whole document is
// about.
func IsOverviewQuery(query string) bool {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	q = strings.TrimRight(q, "?.! ")
	for _, trigger := range overviewTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

// Overview picks up to two sentences from the opening paragraphs that
// announce the document's subject. Without such a sentence the first three
// sentences are returned.
func (s *Scorer) Overview(paragraphs []string) []string {
	if len(paragraphs) > OverviewParagraphs {
		paragraphs = paragraphs[:OverviewParagraphs]
	}

	var sentences []string
	for _, p := range paragraphs {
		sentences = append(sentences, analyzer.SplitSentences(p)...)
	}
	sentences = s.Dedup(sentences, DefaultDedupJaccard)

	var picked []string
	for _, sentence := range sentences {
		if hasOverviewIndicator(sentence) {
			picked = append(picked, sentence)
			if len(picked) == maxOverviewSentences {
				break
			}
		}
	}
	if len(picked) > 0 {
		return picked
	}

	if len(sentences) > overviewFallbackCount {
		sentences = sentences[:overviewFallbackCount]
	}
	return sentences
}

func hasOverviewIndicator(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, ind := range overviewIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
