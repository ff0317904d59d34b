package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"coursekit/config"
	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/adapter/cache"
	"coursekit/internal/adapter/chunker"
	"coursekit/internal/adapter/composer"
	"coursekit/internal/adapter/flashcard"
	"coursekit/internal/adapter/index"
	"coursekit/internal/adapter/scorer"
	"coursekit/internal/adapter/topics"
	"coursekit/internal/domain"
	"coursekit/internal/logger"
	"coursekit/internal/port"
)

// EmptyDocumentText is returned in place of an answer or summary when the
// loaded document has no text.
const EmptyDocumentText = "The course materials do not contain any extractable text."

// flashcardSeedQuery selects the context flashcards are generated from.
const flashcardSeedQuery = "key concepts definitions facts important"

// Session is the state for one loaded document: its lexical index plus the
// components that answer questions, summarize topics and build flashcards
// from it. Loading a new document means creating a new Session.
type Session struct {
	ID   string
	Name string

	cfg       *config.Config
	tokenizer *analyzer.Tokenizer
	chunker   port.Chunker
	index     *index.LexicalIndex
	retriever *cache.CachedRetriever
	scorer    *scorer.Scorer
	composer  *composer.Composer
	topics    *topics.Extractor
	cards     *flashcard.Generator

	mu        sync.RWMutex
	text      strings.Builder
	structure domain.Structure
	segments  [][]string
	spans     map[int]chunkSpan

	log *slog.Logger
}

// NewSession builds the index for text. It fails only when cfg cannot
// produce an index; an empty text yields a session whose results all carry
// OutcomeEmptyDocument.
func NewSession(name, text string, cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chk, err := chunker.NewTokenChunker(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	tok := analyzer.NewTokenizer()
	ix := index.New(tok,
		index.WithLengthNormalization(cfg.Index.LengthNormalize),
		index.WithLogger(logger.WithComponent("index").With("session", id)),
	)

	s := &Session{
		ID:        id,
		Name:      name,
		cfg:       cfg,
		tokenizer: tok,
		chunker:   chk,
		index:     ix,
		retriever: cache.NewCachedRetriever(ix, cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.Retrieve.CacheTTL)),
		scorer:    scorer.New(tok, cfg.Answer.MaxSentences, cfg.Answer.MinScore),
		composer:  composer.New(cfg.Answer.MaxChars, cfg.Answer.SummaryMaxChars),
		topics:    topics.New(tok, cfg.Topics.MinTopics, cfg.Topics.MaxTopics),
		cards:     flashcard.New(tok, cfg.Flashcards.MaxAnswerChars, cfg.Flashcards.Validate),
		spans:     make(map[int]chunkSpan),
		log:       logger.WithComponent("session").With("session", id),
	}

	n := s.ingest(text)
	s.log.Debug("session created", "name", name, "chunks", n)
	return s, nil
}

// AddText appends text to the document. Existing chunks are left untouched
// and cached retrievals are dropped. It returns the number of new chunks.
func (s *Session) AddText(text string) int {
	n := s.ingest(text)
	if n > 0 {
		s.retriever.Invalidate()
	}
	s.log.Debug("text added", "chunks", n, "total", s.index.Len())
	return n
}

func (s *Session) ingest(raw string) int {
	normalized := analyzer.Normalize(raw)
	if normalized == "" {
		return 0
	}
	st := analyzer.IdentifyStructure(raw)

	windows := s.chunker.Windows(normalized)
	texts := make([]string, len(windows))
	for i, w := range windows {
		texts[i] = w.Text
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.text.Len() > 0 {
		s.text.WriteByte(' ')
	}
	s.text.WriteString(normalized)
	s.structure.Sections = appendUnique(s.structure.Sections, st.Sections)
	s.structure.Chapters = appendUnique(s.structure.Chapters, st.Chapters)

	segment := len(s.segments)
	s.segments = append(s.segments, strings.Fields(normalized))
	added := s.index.Add(texts)
	for i, c := range added {
		s.spans[c.ID] = chunkSpan{segment: segment, start: windows[i].Start, end: windows[i].End}
	}
	return len(added)
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, d := range dst {
		seen[strings.ToLower(d)] = struct{}{}
	}
	for _, v := range src {
		if _, ok := seen[strings.ToLower(v)]; ok {
			continue
		}
		seen[strings.ToLower(v)] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}

// Empty reports whether the document produced no chunks.
func (s *Session) Empty() bool {
	return s.index.Len() == 0
}

// Text returns the normalized document text.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text.String()
}

func (s *Session) Outline() domain.Structure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Structure{
		Sections: append([]string(nil), s.structure.Sections...),
		Chapters: append([]string(nil), s.structure.Chapters...),
	}
}

func (s *Session) Stats() domain.Stats {
	return s.index.Stats()
}

// Retrieve ranks chunks against query. k <= 0 uses the configured top_k.
func (s *Session) Retrieve(query string, k int) (domain.Retrieval, error) {
	if k <= 0 {
		k = s.cfg.Retrieve.TopK
	}
	return s.retriever.Search(query, k)
}

// Answer answers question from the document. A question the document cannot
// answer yields OutcomeNoRelevantContent with fallback text and no sources.
func (s *Session) Answer(question string) (domain.Answer, error) {
	ans := domain.Answer{Question: question}
	if s.Empty() {
		ans.Text = EmptyDocumentText
		ans.Outcome = domain.OutcomeEmptyDocument
		return ans, nil
	}

	if scorer.IsOverviewQuery(question) {
		return s.overview(ans), nil
	}

	ret, err := s.Retrieve(question, 0)
	if err != nil {
		return ans, fmt.Errorf("retrieve: %w", err)
	}
	if !ret.Relevant {
		s.log.Debug("no relevant chunks", "question", question)
		return notFound(ans), nil
	}

	ranked := s.scorer.RankQuestion(question, s.contextSentences(ret.Sources()))
	if len(ranked) == 0 {
		s.log.Debug("no sentence matched", "question", question)
		return notFound(ans), nil
	}

	ans.Text = s.composer.Answer(scorer.Texts(ranked), scorer.Classify(question))
	ans.Sources = ret.Sources()
	ans.Outcome = domain.OutcomeFound
	return ans, nil
}

func (s *Session) overview(ans domain.Answer) domain.Answer {
	head := s.index.Head(scorer.OverviewParagraphs)
	sentences := s.scorer.Overview([]string{s.contextText(head)})
	if len(sentences) == 0 {
		return notFound(ans)
	}
	ans.Text = s.composer.Answer(sentences, domain.QueryDescriptive)
	ans.Sources = head
	ans.Outcome = domain.OutcomeFound
	return ans
}

func notFound(ans domain.Answer) domain.Answer {
	ans.Text = composer.NoAnswerText
	ans.Sources = nil
	ans.Outcome = domain.OutcomeNoRelevantContent
	return ans
}

// Topics derives topic phrases from the whole document.
func (s *Session) Topics() []domain.Topic {
	if s.Empty() {
		return nil
	}
	return s.topics.Extract(s.Text())
}

// SummarizeTopic builds a short extract about topic.
func (s *Session) SummarizeTopic(topic string) (domain.Summary, error) {
	sum := domain.Summary{Topic: topic}
	if s.Empty() {
		sum.Text = EmptyDocumentText
		sum.Outcome = domain.OutcomeEmptyDocument
		return sum, nil
	}

	ret, err := s.Retrieve(topic, 0)
	if err != nil {
		return sum, fmt.Errorf("retrieve: %w", err)
	}

	var ranked []domain.ScoredSentence
	if ret.Relevant {
		ranked = s.scorer.RankTopic(topic, s.contextSentences(ret.Sources()), s.Outline().Sections)
	}
	if len(ranked) == 0 {
		sum.Text = composer.NoSummaryText(topic)
		sum.Outcome = domain.OutcomeNoRelevantContent
		return sum, nil
	}

	sum.Text = s.composer.Summary(scorer.Texts(ranked), domain.QueryGeneral)
	sum.Outcome = domain.OutcomeFound
	return sum, nil
}

// SummarizeTopics extracts the document's topics and summarizes each of
// them on a bounded worker pool. Results keep topic order. progress, if not
// nil, is called after each summary with the number finished so far.
func (s *Session) SummarizeTopics(ctx context.Context, progress func(done, total int)) (domain.TopicSummaries, error) {
	topicList := s.Topics()
	results := make(domain.TopicSummaries, len(topicList))
	if len(topicList) == 0 {
		return results, nil
	}

	workers := s.cfg.Topics.Workers
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	done := 0
	start := time.Now()

	for i, topic := range topicList {
		i, topic := i, topic
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := s.SummarizeTopic(topic.Label)
			if err != nil {
				return fmt.Errorf("summarize %q: %w", topic.Label, err)
			}
			results[i] = sum

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(topicList))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug("topics summarized", "topics", len(topicList), "workers", workers, "elapsed", time.Since(start))
	return results, nil
}

// GenerateFlashcards builds a deck of at most count cards. count <= 0 uses
// the configured default.
func (s *Session) GenerateFlashcards(count int) (domain.Deck, error) {
	if count <= 0 {
		count = s.cfg.Flashcards.Count
	}

	deck := domain.Deck{
		ID:        uuid.NewString(),
		Source:    s.Name,
		CreatedAt: time.Now().UTC(),
	}
	if s.Empty() {
		deck.Outcome = domain.OutcomeEmptyDocument
		return deck, nil
	}

	ret, err := s.Retrieve(flashcardSeedQuery, 0)
	if err != nil {
		return deck, fmt.Errorf("retrieve: %w", err)
	}

	deck.Cards = s.cards.Generate(s.contextText(ret.Sources()), s.Text(), count)
	if len(deck.Cards) == 0 {
		deck.Outcome = domain.OutcomeNoRelevantContent
	} else {
		deck.Outcome = domain.OutcomeFound
	}

	s.log.Debug("flashcards generated", "requested", count, "cards", len(deck.Cards))
	return deck, nil
}
