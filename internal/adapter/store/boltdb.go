package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"coursekit/internal/domain"
)

var (
	bucketDecks     = []byte("decks")
	bucketSummaries = []byte("summaries")
)

// DeckStore keeps exported flashcard decks and topic summaries in a bbolt
// file. The lexical index itself is never persisted.
type DeckStore struct {
	db *bbolt.DB
}

func NewDeckStore(path string) (*DeckStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDecks, bucketSummaries} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DeckStore{db: db}, nil
}

func (s *DeckStore) PutDeck(deck domain.Deck) error {
	if deck.ID == "" {
		return fmt.Errorf("deck has no id")
	}
	data, err := json.Marshal(deck)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDecks).Put([]byte(deck.ID), data)
	})
}

func (s *DeckStore) GetDeck(id string) (domain.Deck, error) {
	var deck domain.Deck
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDecks).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrDeckNotFound, id)
		}
		return json.Unmarshal(data, &deck)
	})
	return deck, err
}

// ListDecks returns all decks, newest first.
func (s *DeckStore) ListDecks() ([]domain.Deck, error) {
	var decks []domain.Deck
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDecks).ForEach(func(k, v []byte) error {
			var deck domain.Deck
			if err := json.Unmarshal(v, &deck); err != nil {
				return fmt.Errorf("corrupt deck %s: %w", k, err)
			}
			decks = append(decks, deck)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(decks, func(i, j int) bool {
		return decks[i].CreatedAt.After(decks[j].CreatedAt)
	})
	return decks, nil
}

func (s *DeckStore) DeleteDeck(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDecks)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", domain.ErrDeckNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}

type summaryRecord struct {
	Source    string                `json:"source"`
	SavedAt   time.Time             `json:"saved_at"`
	Summaries domain.TopicSummaries `json:"summaries"`
}

// PutSummaries replaces the summaries saved for source.
func (s *DeckStore) PutSummaries(source string, summaries domain.TopicSummaries) error {
	data, err := json.Marshal(summaryRecord{
		Source:    source,
		SavedAt:   time.Now().UTC(),
		Summaries: summaries,
	})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSummaries).Put([]byte(source), data)
	})
}

func (s *DeckStore) GetSummaries(source string) (domain.TopicSummaries, error) {
	var rec summaryRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSummaries).Get([]byte(source))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrSummariesNotFound, source)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.Summaries, nil
}

func (s *DeckStore) Close() error {
	return s.db.Close()
}
