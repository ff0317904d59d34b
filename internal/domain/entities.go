package domain

import (
	"fmt"
	"time"
)

// Chunk is a contiguous window of document text together with the term
// profile computed when it was indexed. Chunks are never mutated after
// insertion.
type Chunk struct {
	ID         int            `json:"id"`
	Text       string         `json:"text"`
	TermCounts map[string]int `json:"-"`
}

// Window is a span of text cut by a chunker. Start and End are word offsets
// into the text it was cut from, End exclusive.
type Window struct {
	Text  string
	Start int
	End   int
}

type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Retrieval is the outcome of ranking the index against a query. Relevant is
// false when no chunk shared a term with the query and Chunks holds the first
// k chunks in insertion order instead.
type Retrieval struct {
	Chunks   []ScoredChunk
	Relevant bool
}

// Sources returns the bare chunks in ranked order.
func (r Retrieval) Sources() []Chunk {
	out := make([]Chunk, len(r.Chunks))
	for i, c := range r.Chunks {
		out[i] = c.Chunk
	}
	return out
}

// ScoredSentence is a candidate sentence from retrieved context. Matches is
// the number of distinct query keywords it contains.
type ScoredSentence struct {
	Text     string
	Position int
	Matches  int
	Score    float64
}

type Topic struct {
	Label string `json:"label"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Outcome tells callers whether a generated text came from the document or
// is a fallback message.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNoRelevantContent
	OutcomeEmptyDocument
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNoRelevantContent:
		return "no_relevant_content"
	case OutcomeEmptyDocument:
		return "empty_document"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "found":
		*o = OutcomeFound
	case "no_relevant_content":
		*o = OutcomeNoRelevantContent
	case "empty_document":
		*o = OutcomeEmptyDocument
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// Err maps a degraded outcome to its sentinel error. It returns nil for
// OutcomeFound.
func (o Outcome) Err() error {
	switch o {
	case OutcomeNoRelevantContent:
		return ErrNoRelevantContent
	case OutcomeEmptyDocument:
		return ErrEmptyDocument
	default:
		return nil
	}
}

// Answer is the terminal output of the question answering pipeline.
type Answer struct {
	Question string
	Text     string
	Sources  []Chunk
	Outcome  Outcome
}

func (a Answer) Found() bool { return a.Outcome == OutcomeFound }

func (a Answer) Err() error { return a.Outcome.Err() }

type Summary struct {
	Topic   string  `json:"topic"`
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
}

func (s Summary) Found() bool { return s.Outcome == OutcomeFound }

// TopicSummaries keeps summaries in topic order.
type TopicSummaries []Summary

// Map returns the topic label to summary text mapping.
func (ts TopicSummaries) Map() map[string]string {
	m := make(map[string]string, len(ts))
	for _, s := range ts {
		m[s.Topic] = s.Text
	}
	return m
}

// Deck is a generated set of flashcards for one document.
type Deck struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"`
	CreatedAt time.Time   `json:"created_at"`
	Cards     []Flashcard `json:"cards"`
	Outcome   Outcome     `json:"outcome"`
}

// Structure lists headings and chapter markers found in raw document text.
type Structure struct {
	Sections []string `json:"sections"`
	Chapters []string `json:"chapters"`
}

type Stats struct {
	TotalChunks int
	TotalTerms  int
	UniqueTerms int
}
