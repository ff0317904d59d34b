package scorer

import (
	"regexp"
	"strings"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/domain"
)

var starterWords = map[string]domain.QueryType{
	"what":        domain.QueryDescriptive,
	"who":         domain.QueryEntity,
	"whom":        domain.QueryEntity,
	"whose":       domain.QueryEntity,
	"when":        domain.QueryTemporal,
	"where":       domain.QueryLocation,
	"why":         domain.QueryReasoning,
	"how":         domain.QueryProcess,
	"which":       domain.QuerySelection,
	"define":      domain.QueryDefinition,
	"definition":  domain.QueryDefinition,
	"meaning":     domain.QueryDefinition,
	"explain":     domain.QueryExplanation,
	"describe":    domain.QueryExplanation,
	"compare":     domain.QueryComparison,
	"contrast":    domain.QueryComparison,
	"difference":  domain.QueryComparison,
	"differences": domain.QueryComparison,
	"versus":      domain.QueryComparison,
	"list":        domain.QueryEnumeration,
	"enumerate":   domain.QueryEnumeration,
	"name":        domain.QueryEnumeration,
}

// auxiliaries only mark a yes/no question when they open it
var auxiliaries = map[string]struct{}{
	"is": {}, "are": {}, "was": {}, "were": {}, "do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "will": {}, "should": {}, "has": {}, "have": {},
}

// Classify returns the type of the first starter word found in query, in
// order of appearance. Queries without a starter word are general.
func Classify(query string) domain.QueryType {
	words := analyzer.SplitWords(strings.ToLower(query))
	for i, w := range words {
		if t, ok := starterWords[w]; ok {
			return t
		}
		if _, ok := auxiliaries[w]; ok && i == 0 {
			return domain.QueryVerification
		}
	}
	return domain.QueryGeneral
}

const months = `january|february|march|april|may|june|july|august|september|october|november|december`

var typePatterns = map[domain.QueryType]*regexp.Regexp{
	domain.QueryDescriptive:  regexp.MustCompile(`(?i)\b(?:is|are|refers? to|means?|consists? of|describes?)\b`),
	domain.QueryDefinition:   regexp.MustCompile(`(?i)\b(?:is|are|refers? to|means?|defined as|known as|called)\b`),
	domain.QueryEntity:       regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b|(?i:\b(?:scientist|author|founder|inventor|researcher|discovered|proposed)s?\b)`),
	domain.QueryTemporal:     regexp.MustCompile(`\b(?:1[0-9]{3}|20[0-9]{2})s?\b|(?i:\b(?:century|decade|years?|era|period|` + months + `)\b)`),
	domain.QueryLocation:     regexp.MustCompile(`(?i)\b(?:located|region|country|city|continent|area|found in|near)\b`),
	domain.QueryReasoning:    regexp.MustCompile(`(?i)\b(?:because|due to|since|therefore|thus|as a result|reason|causes?)\b`),
	domain.QueryProcess:      regexp.MustCompile(`(?i)\b(?:first|then|next|finally|steps?|process|stages?|by which|through)\b`),
	domain.QuerySelection:    regexp.MustCompile(`(?i)\b(?:best|most|preferred|option|choice|rather than|instead)\b`),
	domain.QueryVerification: regexp.MustCompile(`(?i)\b(?:yes|no|true|false|always|never|not|indeed)\b`),
	domain.QueryExplanation:  regexp.MustCompile(`(?i)\b(?:because|means|results? in|leads? to|causes?|therefore|allows?|enables?)\b`),
	domain.QueryComparison:   regexp.MustCompile(`(?i)\b(?:whereas|while|unlike|similar(?:ly)?|differs?|difference|compared|than|both|however)\b`),
	domain.QueryEnumeration:  regexp.MustCompile(`(?i)\b(?:first|second|third|include[sd]?|including|such as|types? of|kinds? of|consists? of)\b|[:;]`),
}

// matchesType reports whether sentence carries a pattern typical for t.
// General queries never match.
func matchesType(t domain.QueryType, sentence string) bool {
	re, ok := typePatterns[t]
	if !ok {
		return false
	}
	return re.MatchString(sentence)
}
