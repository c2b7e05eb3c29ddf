package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"bankrag/internal/adapter/cache"
	"bankrag/internal/adapter/gate"
	"bankrag/internal/adapter/retriever"
	"bankrag/internal/domain"
	"bankrag/internal/metrics"
)

// DefaultTopK is the number of chunks included in a context block.
const DefaultTopK = 2

// contextSeparator joins the selected chunks into one context string.
const contextSeparator = "\n\n---\n\n"

// Engine is the retrieval-augmented context engine: one instance per
// process, built once, then read concurrently by request handlers. The
// knowledge index is immutable after build; the query cache is the only
// shared mutable structure.
//
// Every internal failure degrades to an empty context string. Callers
// must treat "" as "no grounding available", not as an error.
type Engine struct {
	builder *IndexBuilder
	cache   *cache.EmbeddingCache
	gate    *gate.TopicGate
	topK    int
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	built bool
	index []domain.Chunk
}

func NewEngine(
	builder *IndexBuilder,
	embedCache *cache.EmbeddingCache,
	topicGate *gate.TopicGate,
	topK int,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{
		builder: builder,
		cache:   embedCache,
		gate:    topicGate,
		topK:    topK,
		logger:  logger,
		metrics: m,
	}
}

// Build constructs the knowledge index. Intended to run once at
// startup; if skipped, the first Retrieve triggers it lazily. Repeat
// calls are no-ops.
func (e *Engine) Build(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buildLocked(ctx)
}

func (e *Engine) buildLocked(ctx context.Context) error {
	if e.built {
		return nil
	}

	chunks, err := e.builder.Build(ctx)
	if err != nil {
		return err
	}

	e.index = chunks
	e.built = true
	return nil
}

// snapshot returns the index, building it first if no build has run
// yet. Holding the mutex across the lazy build ensures the full-corpus
// embedding pass runs at most once even under concurrent first
// requests.
func (e *Engine) snapshot(ctx context.Context) []domain.Chunk {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.built {
		if err := e.buildLocked(ctx); err != nil {
			e.logger.Error("lazy index build failed", "error", err)
		}
	}
	return e.index
}

// ShouldRetrieve reports whether the query is on-topic for the
// knowledge base and worth an embedding call.
func (e *Engine) ShouldRetrieve(query string) bool {
	return e.gate.ShouldRetrieve(query)
}

// Retrieve returns the top-K most relevant chunks for query as one
// formatted context block, or "" when no grounding is available.
// topK <= 0 selects the configured default.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int) string {
	if topK <= 0 {
		topK = e.topK
	}

	index := e.snapshot(ctx)
	if len(index) == 0 {
		e.logger.Warn("knowledge index is empty")
		e.metrics.Retrievals.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return ""
	}

	queryVec, hit, err := e.cache.GetOrCompute(ctx, query)
	if hit {
		e.metrics.CacheHits.Inc()
	} else {
		e.metrics.CacheMisses.Inc()
	}
	if err != nil {
		e.logger.Error("failed to embed query", "error", err)
		e.metrics.EmbedFailures.WithLabelValues(metrics.OpQuery).Inc()
		e.metrics.Retrievals.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return ""
	}
	if len(queryVec) == 0 {
		e.metrics.Retrievals.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return ""
	}

	top := retriever.Rank(queryVec, index, topK)
	if len(top) == 0 {
		e.metrics.Retrievals.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return ""
	}

	parts := make([]string, len(top))
	for i, sc := range top {
		parts[i] = fmt.Sprintf("[Source: %s - %s]\n%s",
			sc.Chunk.Metadata.Source, sc.Chunk.Metadata.Section, sc.Chunk.Text)
	}

	e.logger.Debug("retrieved context",
		"query_len", len(query),
		"chunks", len(top),
		"top_score", top[0].Score)
	e.metrics.Retrievals.WithLabelValues(metrics.OutcomeOK).Inc()

	return strings.Join(parts, contextSeparator)
}

// RetrieveScored is Retrieve without formatting, for diagnostics.
func (e *Engine) RetrieveScored(ctx context.Context, query string, topK int) []domain.ScoredChunk {
	if topK <= 0 {
		topK = e.topK
	}

	index := e.snapshot(ctx)
	if len(index) == 0 {
		return nil
	}

	queryVec, _, err := e.cache.GetOrCompute(ctx, query)
	if err != nil || len(queryVec) == 0 {
		return nil
	}

	return retriever.Rank(queryVec, index, topK)
}

// Stats describes the built index.
type Stats struct {
	TotalChunks    int
	ScorableChunks int
	CachedQueries  int
}

// Stats reports on the current index without triggering a build.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	index := e.index
	e.mu.Unlock()

	scorable := 0
	for _, c := range index {
		if c.Scorable() {
			scorable++
		}
	}

	return Stats{
		TotalChunks:    len(index),
		ScorableChunks: scorable,
		CachedQueries:  e.cache.Size(),
	}
}
