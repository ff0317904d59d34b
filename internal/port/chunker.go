package port

import "coursekit/internal/domain"

// Chunker splits normalized document text into overlapping windows.
type Chunker interface {
	Windows(text string) []domain.Window
}
