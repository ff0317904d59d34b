package topics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/domain"
)

const biologyText = "Photosynthesis converts light energy into chemical energy. " +
	"Plants perform photosynthesis in chloroplasts. " +
	"Chloroplasts contain chlorophyll pigment. " +
	"Chlorophyll pigment absorbs light energy. " +
	"Cellular respiration releases stored energy. " +
	"Respiration happens in mitochondria."

func labels(topics []domain.Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = t.Label
	}
	return out
}

func TestExtract(t *testing.T) {
	e := New(analyzer.NewTokenizer(), 5, 8)

	got := labels(e.Extract(biologyText))

	assert.Equal(t, []string{
		"Chlorophyll Pigment Absorbs Light Energy",
		"Photosynthesis Converts Light Energy",
		"Cellular Respiration Releases Stored Energy",
		"Chloroplasts Contain Chlorophyll Pigment",
		"Chemical Energy",
		"Plants Perform Photosynthesis",
		"Respiration Happens",
	}, got)
}

func TestExtractInvariants(t *testing.T) {
	e := New(analyzer.NewTokenizer(), 5, 8)
	lower := strings.ToLower(biologyText)

	topics := e.Extract(biologyText)
	require.GreaterOrEqual(t, len(topics), 5)
	require.LessOrEqual(t, len(topics), 8)

	seen := make(map[string]bool)
	for _, topic := range topics {
		key := strings.ToLower(topic.Label)
		assert.False(t, seen[key], "duplicate topic %q", topic.Label)
		seen[key] = true

		words := strings.Fields(topic.Label)
		assert.LessOrEqual(t, len(words), 5)
		for _, w := range words {
			assert.Equal(t, strings.ToUpper(w[:1]), w[:1], "word %q is not capitalized", w)
			assert.Contains(t, lower, strings.ToLower(w))
		}
	}
}

func TestExtractPadsWithSingleWords(t *testing.T) {
	e := New(analyzer.NewTokenizer(), 5, 8)

	got := labels(e.Extract("Entropy measures disorder. Entropy increases. Energy flows."))

	assert.Equal(t, []string{
		"Entropy Measures Disorder",
		"Entropy Increases",
		"Energy Flows",
		"Entropy",
		"Measures",
	}, got)
}

func TestExtractMaxTopics(t *testing.T) {
	e := New(analyzer.NewTokenizer(), 2, 3)

	topics := e.Extract(biologyText)
	assert.Len(t, topics, 3)
	assert.Equal(t, "Chlorophyll Pigment Absorbs Light Energy", topics[0].Label)
}

func TestExtractEmpty(t *testing.T) {
	e := New(analyzer.NewTokenizer(), 5, 8)

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("it is an ox"))
}

func TestExtractDeterministic(t *testing.T) {
	e := New(analyzer.NewTokenizer(), 5, 8)

	first := e.Extract(biologyText)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(biologyText))
	}
}
