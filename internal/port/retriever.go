package port

import "coursekit/internal/domain"

// Retriever defines the interface for ranking indexed content.
type Retriever interface {
	// Search ranks chunks against query and returns at most k of them.
	Search(query string, k int) (domain.Retrieval, error)
}
