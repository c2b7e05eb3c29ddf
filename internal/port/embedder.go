package port

import "context"

// Embedder generates vector embeddings for text.
// Both calls use the same model, so vectors from EmbedBatch and
// EmbedOne are comparable within one deployment.
type Embedder interface {
	// EmbedBatch generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne generates an embedding for a single text (queries).
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
