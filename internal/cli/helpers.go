package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"bankrag/config"
	"bankrag/internal/adapter/cache"
	"bankrag/internal/adapter/chunker"
	"bankrag/internal/adapter/docstore"
	"bankrag/internal/adapter/embedding"
	"bankrag/internal/adapter/gate"
	"bankrag/internal/logging"
	"bankrag/internal/metrics"
	"bankrag/internal/port"
	"bankrag/internal/usecase"
)

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Logging.Level, cfg.Logging.Format)
}

// newDocStore builds the configured document store. The returned close
// function is a no-op for the filesystem store.
func newDocStore(cfg *config.Config) (port.DocumentStore, func() error, error) {
	switch cfg.Documents.Store {
	case "bolt":
		st, err := docstore.NewBoltStore(cfg.Documents.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case "", "fs":
		st := docstore.NewFSStore(cfg.Documents.Dir, cfg.Documents.Patterns)
		return st, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown document store: %s", cfg.Documents.Store)
	}
}

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	ec := cfg.Embedding

	switch ec.Provider {
	case "", "openai":
		baseURL := ec.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		e, err := embedding.NewOpenAICompatibleEmbedder(ec.APIKeyEnv, ec.Model, baseURL)
		if err != nil {
			return nil, err
		}
		e.SetRateLimit(ec.RequestsPerSecond)
		return e, nil
	case "ollama":
		e, err := embedding.NewOllamaEmbedder(ec.Model, ec.BaseURL)
		if err != nil {
			return nil, err
		}
		e.SetRateLimit(ec.RequestsPerSecond)
		return e, nil
	case "mock":
		return embedding.NewMockEmbedder(ec.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", ec.Provider)
	}
}

// newBuilder wires the index builder from config. Callers own closing
// the returned store.
func newBuilder(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*usecase.IndexBuilder, port.Embedder, func() error, error) {
	store, closeStore, err := newDocStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		closeStore()
		return nil, nil, nil, err
	}

	chk := chunker.NewSectionChunker(cfg.Chunking.ChunkSize, cfg.Chunking.OverlapRatio)
	builder := usecase.NewIndexBuilder(store, chk, embedder, cfg.Documents.Sources, cfg.Embedding.BatchSize, logger, m)

	return builder, embedder, closeStore, nil
}

func newEngine(cfg *config.Config, logger *slog.Logger) (*usecase.Engine, func() error, error) {
	m := metrics.New(prometheus.NewRegistry())

	builder, embedder, closeStore, err := newBuilder(cfg, logger, m)
	if err != nil {
		return nil, nil, err
	}

	engine := usecase.NewEngine(
		builder,
		cache.NewEmbeddingCache(embedder),
		gate.New(cfg.Gate.Keywords),
		cfg.Retrieve.TopK,
		logger,
		m,
	)

	return engine, closeStore, nil
}
