package scorer

// DefaultDedupJaccard is the term overlap above which two sentences count as
// the same sentence. Overlapping chunks repeat sentences at their borders.
const DefaultDedupJaccard = 0.8

// Dedup drops sentences whose term set overlaps an earlier kept sentence by
// at least threshold. Order is preserved.
func (s *Scorer) Dedup(sentences []string, threshold float64) []string {
	if len(sentences) < 2 {
		return sentences
	}

	kept := make([]string, 0, len(sentences))
	keptTerms := make([][]string, 0, len(sentences))

	for _, sentence := range sentences {
		terms := s.tokenizer.Terms(sentence)
		duplicate := false
		for _, prev := range keptTerms {
			if jaccardSimilarity(terms, prev) >= threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, sentence)
		keptTerms = append(keptTerms, terms)
	}

	return kept
}

// jaccardSimilarity computes the Jaccard similarity between two token sets.
func jaccardSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, exists := setB[t]; exists {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}
