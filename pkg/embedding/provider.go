package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings.
// Every provider wired here must produce vectors matching the index
// dimensionality (384 for all-MiniLM-L6-v2 class models).
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
