package domain

// Document is a named block of raw knowledge-base text. Documents are
// loaded once at startup and never mutated afterwards.
type Document struct {
	Source string
	Text   string
}

// ChunkMetadata carries the provenance of a chunk.
type ChunkMetadata struct {
	Source    string `json:"source"`
	Section   string `json:"section"`
	ChunkSize int    `json:"chunk_size"`
}

// Chunk is a retrievable unit of document text. Embedding is attached
// during index build; a chunk with an empty embedding is unscorable and
// contributes similarity 0 against any query.
type Chunk struct {
	Text      string
	Metadata  ChunkMetadata
	Embedding []float32
}

// Scorable reports whether the chunk has an embedding to rank against.
func (c Chunk) Scorable() bool {
	return len(c.Embedding) > 0
}

// ScoredChunk pairs a chunk with its similarity score for one query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
