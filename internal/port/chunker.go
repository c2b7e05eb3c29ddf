package port

import "bankrag/internal/domain"

// Chunker splits one document into retrievable chunks.
type Chunker interface {
	Chunk(doc domain.Document) []domain.Chunk
}
