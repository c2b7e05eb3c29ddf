package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	calls atomic.Int64
	err   error
	empty bool
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		v, err := s.EmbedOne(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		vecs[i] = v
	}
	return vecs, nil
}

func (s *stubEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if s.empty {
		return nil, nil
	}
	return []float32{float32(len(text)), 1}, nil
}

func (s *stubEmbedder) Dimension() int    { return 2 }
func (s *stubEmbedder) ModelName() string { return "stub" }

func TestGetOrComputeCachesExactQuery(t *testing.T) {
	emb := &stubEmbedder{}
	c := NewEmbeddingCache(emb)
	ctx := context.Background()

	vec, hit, err := c.GetOrCompute(ctx, "auto loan rates")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []float32{15, 1}, vec)

	vec2, hit, err := c.GetOrCompute(ctx, "auto loan rates")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, vec, vec2)

	assert.Equal(t, int64(1), emb.calls.Load())
	assert.Equal(t, 1, c.Size())
}

func TestGetOrComputeNoNormalization(t *testing.T) {
	emb := &stubEmbedder{}
	c := NewEmbeddingCache(emb)
	ctx := context.Background()

	c.GetOrCompute(ctx, "loan")
	c.GetOrCompute(ctx, "Loan")
	c.GetOrCompute(ctx, "loan ")

	assert.Equal(t, int64(3), emb.calls.Load())
	assert.Equal(t, 3, c.Size())
}

func TestGetOrComputeDoesNotCacheFailures(t *testing.T) {
	emb := &stubEmbedder{err: errors.New("boom")}
	c := NewEmbeddingCache(emb)
	ctx := context.Background()

	_, hit, err := c.GetOrCompute(ctx, "query")
	require.Error(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Size())

	// The provider recovers; the next call retries.
	emb.err = nil
	vec, hit, err := c.GetOrCompute(ctx, "query")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotEmpty(t, vec)
	assert.Equal(t, int64(2), emb.calls.Load())
}

func TestGetOrComputeDoesNotCacheEmptyVectors(t *testing.T) {
	emb := &stubEmbedder{empty: true}
	c := NewEmbeddingCache(emb)

	vec, hit, err := c.GetOrCompute(context.Background(), "query")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, vec)
	assert.Equal(t, 0, c.Size())
}

func TestGetOrComputeConcurrent(t *testing.T) {
	emb := &stubEmbedder{}
	c := NewEmbeddingCache(emb)
	ctx := context.Background()

	queries := []string{"one", "two", "three", "four"}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := c.GetOrCompute(ctx, queries[i%len(queries)])
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Distinct queries never clobber each other; racing computes for
	// the same query are allowed but converge on one entry each.
	assert.Equal(t, len(queries), c.Size())
	for _, q := range queries {
		vec, hit, err := c.GetOrCompute(ctx, q)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, []float32{float32(len(q)), 1}, vec)
	}
}
