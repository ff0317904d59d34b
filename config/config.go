package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"coursekit/internal/domain"
)

// Config holds all configuration for coursekit.
type Config struct {
	Index      IndexConfig     `yaml:"index"`
	Retrieve   RetrieveConfig  `yaml:"retrieve"`
	Answer     AnswerConfig    `yaml:"answer"`
	Flashcards FlashcardConfig `yaml:"flashcards"`
	Topics     TopicConfig     `yaml:"topics"`
	Store      StoreConfig     `yaml:"store"`
	Logging    LoggingConfig   `yaml:"logging"`
}

// IndexConfig holds chunking and indexing configuration.
type IndexConfig struct {
	Includes        []string `yaml:"includes"`
	Excludes        []string `yaml:"excludes"`
	ChunkSize       int      `yaml:"chunk_size"`    // words per chunk
	ChunkOverlap    int      `yaml:"chunk_overlap"` // words shared by consecutive chunks
	LengthNormalize bool     `yaml:"length_normalize"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK      int           `yaml:"top_k"`
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// AnswerConfig holds sentence ranking and composition limits.
type AnswerConfig struct {
	MaxChars        int     `yaml:"max_chars"`
	SummaryMaxChars int     `yaml:"summary_max_chars"`
	MaxSentences    int     `yaml:"max_sentences"`
	MinScore        float64 `yaml:"min_score"`
}

type FlashcardConfig struct {
	Count          int  `yaml:"count"`
	MaxAnswerChars int  `yaml:"max_answer_chars"`
	Validate       bool `yaml:"validate"`
}

type TopicConfig struct {
	MaxTopics int `yaml:"max_topics"`
	MinTopics int `yaml:"min_topics"`
	Workers   int `yaml:"workers"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes:     []string{"**/*.txt", "**/*.md", "**/*.text"},
			Excludes:     []string{"**/.git/**", "**/.coursekit/**", "**/node_modules/**"},
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Retrieve: RetrieveConfig{
			TopK:      4,
			CacheSize: 128,
			CacheTTL:  5 * time.Minute,
		},
		Answer: AnswerConfig{
			MaxChars:        600,
			SummaryMaxChars: 500,
			MaxSentences:    5,
			MinScore:        0.5,
		},
		Flashcards: FlashcardConfig{
			Count:          10,
			MaxAnswerChars: 150,
			Validate:       true,
		},
		Topics: TopicConfig{
			MaxTopics: 8,
			MinTopics: 5,
			Workers:   4,
		},
		Store: StoreConfig{
			Path: filepath.Join(".coursekit", "decks.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for coursekit.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "coursekit.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".coursekit", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that cannot produce a meaningful index.
func (c *Config) Validate() error {
	switch {
	case c.Index.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", domain.ErrMalformedConfiguration, c.Index.ChunkSize)
	case c.Index.ChunkOverlap < 0:
		return fmt.Errorf("%w: chunk_overlap must not be negative, got %d", domain.ErrMalformedConfiguration, c.Index.ChunkOverlap)
	case c.Index.ChunkOverlap >= c.Index.ChunkSize:
		return fmt.Errorf("%w: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			domain.ErrMalformedConfiguration, c.Index.ChunkOverlap, c.Index.ChunkSize)
	case c.Retrieve.TopK <= 0:
		return fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrMalformedConfiguration, c.Retrieve.TopK)
	}
	return nil
}

// StorePath resolves the deck store path against dir when it is relative.
func (c *Config) StorePath(dir string) string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(dir, c.Store.Path)
}
