package validation

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
)

// defaultEmbeddingDims keeps the hashed vectors small enough to store inline
// with each record.
const defaultEmbeddingDims = 64

// Embedder produces a vector representation of a narrative. Implementations
// may call out to an external service; the in-process default is
// deterministic and never leaves the process.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbedderOption applies a configuration option to the HashingEmbedder.
type EmbedderOption func(*HashingEmbedder)

// WithDimensions sets the embedding vector size.
func WithDimensions(dims int) EmbedderOption {
	return func(e *HashingEmbedder) {
		if dims > 0 {
			e.dims = dims
		}
	}
}

// HashingEmbedder implements Embedder with feature hashing over tokens.
// Vectors are non-negative term counts, L2-normalized, so cosine similarity
// between any two embeddings lands in [0,1].
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder creates an embedder with configuration options.
func NewHashingEmbedder(opts ...EmbedderOption) *HashingEmbedder {
	e := &HashingEmbedder{dims: defaultEmbeddingDims}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed hashes each token into a bucket and normalizes the resulting counts.
func (e *HashingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("embedding cancelled: %w", ctx.Err())
	default:
	}

	vec := make([]float64, e.dims)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(e.dims)]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}
