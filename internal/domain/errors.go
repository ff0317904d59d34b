package domain

import "errors"

var (
	ErrEmptyDocument          = errors.New("document has no extractable text")
	ErrNoRelevantContent      = errors.New("no relevant content found")
	ErrMalformedConfiguration = errors.New("malformed configuration")
	ErrDeckNotFound           = errors.New("deck not found")
	ErrSummariesNotFound      = errors.New("summaries not found")
)
