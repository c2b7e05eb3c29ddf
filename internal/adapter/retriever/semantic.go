// Package retriever scores indexed chunks against a query embedding.
// The corpus is tens of chunks, so ranking is a brute-force scan; no
// approximate nearest-neighbor structure is warranted at this scale.
package retriever

import (
	"math"
	"sort"

	"bankrag/internal/domain"
)

// Rank scores every chunk against the query embedding and returns the
// top k by cosine similarity. Chunks without an embedding score 0, so
// they only surface when k exceeds the number of scorable chunks. The
// sort is stable: ties keep insertion order, making results
// deterministic for a fixed index and query.
func Rank(query []float32, chunks []domain.Chunk, k int) []domain.ScoredChunk {
	if len(query) == 0 || len(chunks) == 0 || k <= 0 {
		return nil
	}

	scored := make([]domain.ScoredChunk, len(chunks))
	for i, chunk := range chunks {
		score := 0.0
		if chunk.Scorable() {
			score = CosineSimilarity(query, chunk.Embedding)
		}
		scored[i] = domain.ScoredChunk{Chunk: chunk, Score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// CosineSimilarity calculates the cosine similarity between two
// vectors. Mismatched lengths and zero-magnitude vectors yield 0 by
// convention rather than faulting.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
