package usecase

import (
	"fmt"
	"path/filepath"

	"coursekit/config"
	"coursekit/internal/adapter/fs"
	"coursekit/internal/domain"
)

// LoadResult describes the files a session was built from.
type LoadResult struct {
	Files  []fs.FileInfo
	Chunks int
	Errors []string
}

// OpenSession loads every course file matching the configured patterns
// under path, which may also name a single file. Files are added to the
// index in lexical path order. Unreadable files are reported in the result
// and skipped.
func OpenSession(path string, cfg *config.Config) (*Session, *LoadResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	files, err := walker.Walk(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: no course files found in %s", domain.ErrEmptyDocument, path)
	}

	session, err := NewSession(filepath.Base(path), "", cfg)
	if err != nil {
		return nil, nil, err
	}

	result := &LoadResult{}
	for _, f := range files {
		text, err := fs.ReadFile(f.Path)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Chunks += session.AddText(text)
		result.Files = append(result.Files, f)
	}

	session.log.Debug("course loaded", "path", path, "files", len(result.Files), "chunks", result.Chunks)
	return session, result, nil
}
