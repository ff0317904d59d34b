package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursekit/config"
	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/adapter/composer"
	"coursekit/internal/domain"
)

const biologyText = "Photosynthesis converts light energy into chemical energy. " +
	"Plants perform photosynthesis in chloroplasts. " +
	"Chloroplasts contain chlorophyll pigment. " +
	"Chlorophyll pigment absorbs light energy. " +
	"Cellular respiration releases stored energy. " +
	"Respiration happens in mitochondria."

func newTestSession(t *testing.T, text string) *Session {
	t.Helper()
	s, err := NewSession("test", text, nil)
	require.NoError(t, err)
	return s
}

func smallChunkConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Index.ChunkSize = 15
	cfg.Index.ChunkOverlap = 5
	return cfg
}

func TestAnswerFindsDefinition(t *testing.T) {
	s := newTestSession(t, "Photosynthesis is the process by which plants convert light into energy. "+
		"Mitochondria are the powerhouse of the cell.")

	ans, err := s.Answer("What is photosynthesis?")
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFound, ans.Outcome)
	assert.Contains(t, ans.Text, "process by which plants convert light into energy")
	assert.NotEmpty(t, ans.Sources)
	assert.NoError(t, ans.Err())
}

// moleculeText has one sentence per keyword so every answer can be traced
// back to a single sentence of the document.
func moleculeText(n int) (string, []string) {
	keywords := make([]string, n)
	var b strings.Builder
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw%c%c%c", 'a'+i/676%26, 'a'+i/26%26, 'a'+i%26)
		fmt.Fprintf(&b, "The %s molecule binds receptor sites quickly. ", keywords[i])
	}
	return b.String(), keywords
}

func TestAnswerSentencesComeFromDocument(t *testing.T) {
	text, keywords := moleculeText(300)
	s := newTestSession(t, text)
	require.Greater(t, s.Stats().TotalChunks, 1)
	doc := s.Text()

	for _, kw := range keywords {
		ans, err := s.Answer("What does " + kw + " bind?")
		require.NoError(t, err)
		require.True(t, ans.Found(), "no answer for %s", kw)
		assert.Equal(t, "The "+kw+" molecule binds receptor sites quickly.", ans.Text)
		for _, sentence := range analyzer.SplitSentences(ans.Text) {
			assert.Contains(t, doc, sentence)
		}
	}
}

func TestContextSentencesAcrossChunks(t *testing.T) {
	s, err := NewSession("biology", biologyText, smallChunkConfig())
	require.NoError(t, err)
	require.Greater(t, s.Stats().TotalChunks, 2)
	doc := s.Text()

	for _, q := range []string{"Is mitosis a division?", "Where is chlorophyll?", "What releases energy?", "light energy"} {
		ret, err := s.Retrieve(q, 0)
		require.NoError(t, err)
		for _, sentence := range s.contextSentences(ret.Sources()) {
			assert.Contains(t, doc, sentence, "query %q", q)
		}
	}

	all := s.contextSentences(s.index.Chunks())
	assert.Equal(t, analyzer.SplitSentences(biologyText), all)
}

func TestContextSentencesKeepSegmentsApart(t *testing.T) {
	s, err := NewSession("notes", "Cells divide by mitosis and", smallChunkConfig())
	require.NoError(t, err)
	s.AddText("meiosis creates gametes. Gametes carry half the chromosomes.")

	got := s.contextSentences(s.index.Chunks())
	assert.Equal(t, []string{"Cells divide by mitosis and", "meiosis creates gametes.", "Gametes carry half the chromosomes."}, got)
}

func TestAnswerNoRelevantContent(t *testing.T) {
	s := newTestSession(t, biologyText)

	ans, err := s.Answer("xyzzyquux")
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeNoRelevantContent, ans.Outcome)
	assert.Equal(t, composer.NoAnswerText, ans.Text)
	assert.Empty(t, ans.Sources)
	assert.ErrorIs(t, ans.Err(), domain.ErrNoRelevantContent)
}

func TestEmptyDocument(t *testing.T) {
	s := newTestSession(t, "   \n\t ")
	assert.True(t, s.Empty())

	ans, err := s.Answer("What is photosynthesis?")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEmptyDocument, ans.Outcome)
	assert.ErrorIs(t, ans.Err(), domain.ErrEmptyDocument)

	sum, err := s.SummarizeTopic("Photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEmptyDocument, sum.Outcome)

	deck, err := s.GenerateFlashcards(5)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeEmptyDocument, deck.Outcome)
	assert.Empty(t, deck.Cards)

	assert.Empty(t, s.Topics())

	summaries, err := s.SummarizeTopics(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestMalformedConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Index.ChunkSize = 10
	cfg.Index.ChunkOverlap = 10

	_, err := NewSession("bad", biologyText, cfg)
	assert.ErrorIs(t, err, domain.ErrMalformedConfiguration)

	_, _, err = OpenSession(t.TempDir(), cfg)
	assert.ErrorIs(t, err, domain.ErrMalformedConfiguration)
}

func TestAddTextInvalidatesCache(t *testing.T) {
	s := newTestSession(t, "Mitochondria are the powerhouse of the cell.")

	ans, err := s.Answer("What is chlorophyll?")
	require.NoError(t, err)
	assert.False(t, ans.Found())

	n := s.AddText("Chlorophyll is the green pigment that captures light in plants.")
	assert.Equal(t, 1, n)

	ans, err = s.Answer("What is chlorophyll?")
	require.NoError(t, err)
	assert.True(t, ans.Found())
	assert.Contains(t, ans.Text, "green pigment")
	assert.Equal(t, 2, s.Stats().TotalChunks)
}

func TestOverviewQuestion(t *testing.T) {
	s := newTestSession(t, "This course covers the basics of cell biology. "+
		"Cells are the smallest units of life. "+
		"Energy powers every cell.")

	ans, err := s.Answer("What is this document about?")
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFound, ans.Outcome)
	assert.Equal(t, "This course covers the basics of cell biology.", ans.Text)
	assert.Len(t, ans.Sources, 1)
}

func TestExtractedTopicsAreSummarizable(t *testing.T) {
	configs := map[string]*config.Config{
		"default":      config.DefaultConfig(),
		"small chunks": smallChunkConfig(),
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			s, err := NewSession("biology", biologyText, cfg)
			require.NoError(t, err)

			topicList := s.Topics()
			require.NotEmpty(t, topicList)

			for _, topic := range topicList {
				sum, err := s.SummarizeTopic(topic.Label)
				require.NoError(t, err)
				assert.True(t, sum.Found(), "topic %q was not summarized", topic.Label)
				assert.NotEqual(t, composer.NoSummaryText(topic.Label), sum.Text)
			}
		})
	}
}

func TestSummarizeUnknownTopic(t *testing.T) {
	s := newTestSession(t, biologyText)

	sum, err := s.SummarizeTopic("Quantum Chromodynamics")
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeNoRelevantContent, sum.Outcome)
	assert.Equal(t, composer.NoSummaryText("Quantum Chromodynamics"), sum.Text)
}

func TestSummarizeTopicIgnoresQuestionWords(t *testing.T) {
	s := newTestSession(t, "Name servers translate every domain into a numeric network address. "+
		"Root name servers answer queries about each top level domain. "+
		"Local name servers cache answers so repeated lookups stay fast.")

	sum, err := s.SummarizeTopic("Name Servers")
	require.NoError(t, err)
	require.True(t, sum.Found())

	assert.NotContains(t, sum.Text, "Key points")
	assert.NotContains(t, sum.Text, "•")
	assert.True(t, strings.HasPrefix(sum.Text, "Name servers translate"), sum.Text)
}

func TestSummarizeTopicsKeepsOrder(t *testing.T) {
	s := newTestSession(t, biologyText)
	topicList := s.Topics()

	var calls, last int
	summaries, err := s.SummarizeTopics(context.Background(), func(done, total int) {
		calls++
		last = done
		assert.Equal(t, len(topicList), total)
	})
	require.NoError(t, err)

	require.Len(t, summaries, len(topicList))
	for i, topic := range topicList {
		assert.Equal(t, topic.Label, summaries[i].Topic)
	}
	assert.Equal(t, len(topicList), calls)
	assert.Equal(t, len(topicList), last)
	assert.Len(t, summaries.Map(), len(topicList))
}

func TestSummarizeTopicsCancelled(t *testing.T) {
	s := newTestSession(t, biologyText)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SummarizeTopics(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateFlashcards(t *testing.T) {
	s, err := NewSession("thermo", "Entropy is a measure of disorder in a system.", nil)
	require.NoError(t, err)

	deck, err := s.GenerateFlashcards(10)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFound, deck.Outcome)
	assert.Equal(t, "thermo", deck.Source)
	assert.NotEmpty(t, deck.ID)
	assert.Contains(t, deck.Cards, domain.Flashcard{
		Question: "What is Entropy?",
		Answer:   "a measure of disorder in a system",
	})
}

func TestOutline(t *testing.T) {
	s := newTestSession(t, "CHAPTER 1\n1. Introduction\nCells are the smallest units of life.\n")

	outline := s.Outline()
	assert.Contains(t, outline.Sections, "1. Introduction")
	assert.Contains(t, outline.Chapters, "CHAPTER 1")
}

func TestOpenSession(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"week1.txt":  "Photosynthesis is the process by which plants convert light into energy.",
		"week2.md":   "Entropy is a measure of disorder in a system.",
		"figure.png": "not text",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}

	s, result, err := OpenSession(root, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(root), s.Name)
	assert.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Chunks)
	assert.Empty(t, result.Errors)

	ans, err := s.Answer("What is entropy?")
	require.NoError(t, err)
	assert.Contains(t, ans.Text, "measure of disorder")
}

func TestOpenSessionNoFiles(t *testing.T) {
	_, _, err := OpenSession(t.TempDir(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}
