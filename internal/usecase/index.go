package usecase

import (
	"context"
	"log/slog"

	"bankrag/internal/domain"
	"bankrag/internal/metrics"
	"bankrag/internal/port"
)

// DefaultBatchSize is the number of chunk texts submitted per embedding
// call during index build.
const DefaultBatchSize = 100

// IndexBuilder materializes the knowledge index: every chunk of every
// configured document with its embedding attached. Failures degrade the
// affected pieces instead of aborting the build: a missing document
// shrinks the corpus, and a failed embedding batch leaves its chunks
// unscorable.
type IndexBuilder struct {
	store     port.DocumentStore
	chunker   port.Chunker
	embedder  port.Embedder
	sources   []string
	batchSize int
	logger    *slog.Logger
	metrics   *metrics.Metrics
	progress  func(done, total int)
}

// NewIndexBuilder creates a builder. sources is the ordered list of
// documents to load; if empty, the store's own source listing is used.
func NewIndexBuilder(
	store port.DocumentStore,
	chunker port.Chunker,
	embedder port.Embedder,
	sources []string,
	batchSize int,
	logger *slog.Logger,
	m *metrics.Metrics,
) *IndexBuilder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &IndexBuilder{
		store:     store,
		chunker:   chunker,
		embedder:  embedder,
		sources:   sources,
		batchSize: batchSize,
		logger:    logger,
		metrics:   m,
	}
}

// SetProgress installs a callback invoked after each embedding batch
// with the number of chunks embedded so far and the total.
func (b *IndexBuilder) SetProgress(fn func(done, total int)) {
	b.progress = fn
}

// Build loads, chunks, and embeds the whole corpus. The returned slice
// preserves document and section order and is never mutated afterwards.
// The only returned error is caller cancellation; everything else is
// soft degradation.
func (b *IndexBuilder) Build(ctx context.Context) ([]domain.Chunk, error) {
	chunks, err := b.loadAndChunk(ctx)
	if err != nil {
		return nil, err
	}

	if err := b.embedAll(ctx, chunks); err != nil {
		return nil, err
	}

	b.metrics.IndexChunks.Set(float64(len(chunks)))
	b.logger.Info("knowledge index built",
		"chunks", len(chunks),
		"model", b.embedder.ModelName(),
		"dimension", b.embedder.Dimension())

	return chunks, nil
}

func (b *IndexBuilder) loadAndChunk(ctx context.Context) ([]domain.Chunk, error) {
	sources := b.sources
	if len(sources) == 0 {
		var err error
		sources, err = b.store.Sources(ctx)
		if err != nil {
			b.logger.Error("failed to list document sources", "error", err)
			return nil, nil
		}
	}

	var chunks []domain.Chunk
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := b.store.Load(ctx, source)
		if err != nil {
			b.logger.Warn("skipping document", "source", source, "error", err)
			b.metrics.DocumentsSkipped.Inc()
			continue
		}

		docChunks := b.chunker.Chunk(domain.Document{Source: source, Text: text})
		chunks = append(chunks, docChunks...)

		b.metrics.DocumentsLoaded.Inc()
		b.logger.Info("loaded document", "source", source, "chunks", len(docChunks))
	}

	return chunks, nil
}

// embedAll embeds chunk texts in batches and zips the vectors back onto
// the chunks positionally. A failed batch leaves empty embeddings on
// its chunks only; other batches are unaffected.
func (b *IndexBuilder) embedAll(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	for i := 0; i < len(texts); i += b.batchSize {
		end := i + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := b.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Error("embedding batch failed", "from", i, "to", end, "error", err)
			b.metrics.EmbedFailures.WithLabelValues(metrics.OpBatch).Inc()
			vectors = make([][]float32, end-i)
		}

		for j, vec := range vectors {
			if i+j < len(chunks) {
				chunks[i+j].Embedding = vec
			}
		}

		if b.progress != nil {
			b.progress(end, len(texts))
		}
	}

	return nil
}
