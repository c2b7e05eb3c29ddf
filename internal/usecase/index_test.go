package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankrag/internal/adapter/chunker"
	"bankrag/internal/metrics"
)

// flakyEmbedder fails whole batches selected by failWhen.
type flakyEmbedder struct {
	failWhen func(texts []string) bool
}

func (f *flakyEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.failWhen != nil && f.failWhen(texts) {
		return nil, errors.New("batch failed")
	}
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = topicVector(texts[i])
	}
	return vecs, nil
}

func (f *flakyEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	return topicVector(text), nil
}

func (f *flakyEmbedder) Dimension() int    { return 3 }
func (f *flakyEmbedder) ModelName() string { return "flaky" }

func TestBuildPreservesOrder(t *testing.T) {
	store := &memStore{docs: map[string]string{"kb.txt": testDoc}}
	m := metrics.New(prometheus.NewRegistry())
	builder := NewIndexBuilder(store, chunker.NewSectionChunker(800, 0.2), &fakeEmbedder{}, []string{"kb.txt"}, 100, testLogger(), m)

	chunks, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "Banking Knowledge", chunks[0].Metadata.Section)
	assert.Equal(t, "AUTO LOANS", chunks[1].Metadata.Section)
	assert.Equal(t, "MUTUAL FUND SIP", chunks[2].Metadata.Section)
	for _, c := range chunks {
		assert.True(t, c.Scorable())
	}
}

func TestBuildFailedBatchIsolated(t *testing.T) {
	store := &memStore{docs: map[string]string{"kb.txt": testDoc}}
	emb := &flakyEmbedder{failWhen: func(texts []string) bool {
		return strings.Contains(texts[0], "MUTUAL FUND SIP")
	}}
	m := metrics.New(prometheus.NewRegistry())
	// batchSize 1 puts every chunk in its own batch.
	builder := NewIndexBuilder(store, chunker.NewSectionChunker(800, 0.2), emb, []string{"kb.txt"}, 1, testLogger(), m)

	chunks, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.True(t, chunks[0].Scorable())
	assert.True(t, chunks[1].Scorable())
	assert.False(t, chunks[2].Scorable(), "failed batch leaves its chunk unscorable")
}

func TestBuildDiscoversSourcesWhenUnconfigured(t *testing.T) {
	store := &memStore{docs: map[string]string{
		"b.txt": "B Doc\n\nAuto loans text.",
		"a.txt": "A Doc\n\nMutual fund text.",
	}}
	m := metrics.New(prometheus.NewRegistry())
	builder := NewIndexBuilder(store, chunker.NewSectionChunker(800, 0.2), &fakeEmbedder{}, nil, 100, testLogger(), m)

	chunks, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	// Store listing order (sorted) drives index order.
	assert.Equal(t, "a.txt", chunks[0].Metadata.Source)
	assert.Equal(t, "b.txt", chunks[1].Metadata.Source)
}

func TestBuildProgressCallback(t *testing.T) {
	store := &memStore{docs: map[string]string{"kb.txt": testDoc}}
	m := metrics.New(prometheus.NewRegistry())
	builder := NewIndexBuilder(store, chunker.NewSectionChunker(800, 0.2), &fakeEmbedder{}, []string{"kb.txt"}, 2, testLogger(), m)

	var steps [][2]int
	builder.SetProgress(func(done, total int) {
		steps = append(steps, [2]int{done, total})
	})

	_, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2, 3}, {3, 3}}, steps)
}

func TestBuildCancelled(t *testing.T) {
	store := &memStore{docs: map[string]string{"kb.txt": testDoc}}
	m := metrics.New(prometheus.NewRegistry())
	builder := NewIndexBuilder(store, chunker.NewSectionChunker(800, 0.2), &fakeEmbedder{}, []string{"kb.txt"}, 100, testLogger(), m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
