package contract

import (
	"context"

	"ai-claims-be/internal/entity"
)

// PolicyChunkRepository abstracts the vector index holding embedded policy
// chunks. Implementations always append; re-ingesting a document duplicates
// its chunks, there is no dedup or versioning.
type PolicyChunkRepository interface {
	// EnsureCollection creates the backing collection/table when absent.
	// Creation is idempotent; a concurrent double-create is benign.
	EnsureCollection(ctx context.Context) error

	// StoreBatch upserts chunks with their embeddings, one entry per chunk.
	StoreBatch(ctx context.Context, chunks []*entity.PolicyChunk, embeddings [][]float32) error

	// SearchSimilar returns the top-k nearest chunks by cosine similarity.
	// No minimum-similarity cutoff is applied.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.RetrievedChunk, error)
}
