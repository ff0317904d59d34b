package usecase

import (
	"sort"
	"strings"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/adapter/scorer"
	"coursekit/internal/domain"
)

// sentenceReach bounds how many words a chunk edge is moved to reach a
// sentence boundary.
const sentenceReach = 60

// chunkSpan locates a chunk in the words of the text it was cut from.
type chunkSpan struct {
	segment int
	start   int
	end     int
}

// region is a contiguous run of words rebuilt from one or more chunks.
// opens and closes report whether its edges fall on sentence boundaries.
type region struct {
	chunkSpan
	opens  bool
	closes bool
}

// contextSentences rebuilds the text behind chunks in document order and
// splits it into sentences. Overlapping or touching chunks are merged
// before splitting, edges are moved to the nearest sentence boundary, and
// a sentence cut by an edge that could not be moved is dropped.
func (s *Session) contextSentences(chunks []domain.Chunk) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sentences []string
	for _, r := range s.regions(chunks) {
		words := s.segments[r.segment][r.start:r.end]
		parts := analyzer.SplitSentences(strings.Join(words, " "))
		if !r.opens && len(parts) > 0 {
			parts = parts[1:]
		}
		if !r.closes && len(parts) > 0 {
			parts = parts[:len(parts)-1]
		}
		sentences = append(sentences, parts...)
	}
	return s.scorer.Dedup(sentences, scorer.DefaultDedupJaccard)
}

// contextText is contextSentences joined back into one passage.
func (s *Session) contextText(chunks []domain.Chunk) string {
	return strings.Join(s.contextSentences(chunks), " ")
}

// regions must be called with s.mu held.
func (s *Session) regions(chunks []domain.Chunk) []region {
	rs := make([]region, 0, len(chunks))
	for _, c := range chunks {
		sp, ok := s.spans[c.ID]
		if !ok {
			continue
		}
		words := s.segments[sp.segment]
		start, opens := sentenceStart(words, sp.start)
		end, closes := sentenceEnd(words, sp.end)
		rs = append(rs, region{
			chunkSpan: chunkSpan{segment: sp.segment, start: start, end: end},
			opens:     opens,
			closes:    closes,
		})
	}
	if len(rs) == 0 {
		return nil
	}

	sort.Slice(rs, func(i, j int) bool {
		if rs[i].segment != rs[j].segment {
			return rs[i].segment < rs[j].segment
		}
		return rs[i].start < rs[j].start
	})

	merged := rs[:1]
	for _, r := range rs[1:] {
		last := &merged[len(merged)-1]
		if r.segment != last.segment || r.start > last.end {
			merged = append(merged, r)
			continue
		}
		if r.start == last.start {
			last.opens = last.opens || r.opens
		}
		switch {
		case r.end > last.end:
			last.end, last.closes = r.end, r.closes
		case r.end == last.end:
			last.closes = last.closes || r.closes
		}
	}
	return merged
}

// sentenceStart moves start back to the first word of its sentence.
func sentenceStart(words []string, start int) (int, bool) {
	for i := start; start-i <= sentenceReach; i-- {
		if i == 0 || analyzer.EndsSentence(words[i-1]) {
			return i, true
		}
	}
	return start, false
}

// sentenceEnd moves end forward past the last word of its sentence.
func sentenceEnd(words []string, end int) (int, bool) {
	for i := end; i-end <= sentenceReach; i++ {
		if i == len(words) || analyzer.EndsSentence(words[i-1]) {
			return i, true
		}
	}
	return end, false
}
